package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKey(t *testing.T) {
	tbl := []struct {
		in, out string
	}{
		{"original_source_link", "original_source_link"},
		{"Source-Author", "source-author"},
		{"with space", "withspace"},
		{"meta.key/../x", "metakeyx"},
		{"ключ", ""},
		{"", ""},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.out, SanitizeKey(tt.in), tt.in)
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Hello World", SanitizeText("  Hello \t <i>World</i>\n", false))
	assert.Equal(t, "Tom & Jerry's", SanitizeText("Tom &amp; Jerry's", false))
	assert.Equal(t, "a < b", SanitizeText("a < b", false))
	assert.Equal(t, "safe", SanitizeText("<script>alert(1)</script>safe", false))
	assert.Equal(t, "one\ntwo three", SanitizeText(" one \r\n two   three ", true))
	assert.Empty(t, SanitizeText("", true))

	for _, in := range []string{"Use &lt;b&gt; tags", "&lt;script&gt;x&lt;/script&gt;y", "5 &gt; 3", "x &amp;amp; y", "a\n&lt;br&gt;\nb"} {
		once := SanitizeText(in, true)
		assert.Equal(t, once, SanitizeText(once, true), in)
		assert.NotContains(t, once, "<b>", in)
	}
	assert.Equal(t, "Use tags", SanitizeText("Use &lt;b&gt; tags", false))
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "ru-RU", NormalizeLanguage("ru_RU"))
	assert.Equal(t, "en", NormalizeLanguage("en"))
	assert.Equal(t, "en-US", NormalizeLanguage("EN-us"))
	assert.Equal(t, "not a language", NormalizeLanguage("not a language"))
	assert.Empty(t, NormalizeLanguage(""))
}
