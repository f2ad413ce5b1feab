package settings

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() StaticDefaults {
	return StaticDefaults{
		Name:        "Example Site",
		Description: "Just another site",
		Lang:        "ru_RU",
		Email:       "admin@example.com",
		Clock:       func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func TestResolver_Resolve_Defaults(t *testing.T) {
	r := NewResolver(testDefaults(), 0)

	res, err := r.Resolve(nil)
	require.NoError(t, err)

	assert.Equal(t, "Example Site", res.Title)
	assert.Equal(t, "Just another site", res.Description)
	assert.Equal(t, "ru-RU", res.Language)
	assert.Equal(t, "Copyright 2024 Example Site", res.Copyright)
	assert.Equal(t, "admin@example.com (Example Site)", res.ManagingEditor)
	assert.Equal(t, "admin@example.com (Webmaster)", res.Webmaster)
	assert.Equal(t, DefaultPostsPerFeed, res.PostsPerFeed)
	assert.Equal(t, []string{"post"}, res.RecordTypes)
	assert.Empty(t, res.SourceLinkField)
	assert.Empty(t, res.AuthorField)
	assert.Empty(t, res.DateField)
}

func TestResolver_Resolve_ExplicitValues(t *testing.T) {
	r := NewResolver(testDefaults(), 0)

	res, err := r.Resolve(map[string]any{
		KeyTitle:          "  My <b>Feed</b>  ",
		KeyDescription:    "line one\n\n  line   two  ",
		KeyLanguage:       "en_us",
		KeyCopyright:      "(c) me",
		KeyManagingEditor: "ed@example.com (Ed)",
		KeyWebmaster:      "web@example.com (Web)",
		KeyPostsPerFeed:   "25",
		KeyRecordTypes:    []any{"Post", "News Item", "post", ""},
		KeySourceLinkMeta: "Original Source-Link!",
		KeyAuthorMeta:     "source_author",
		KeyDateMeta:       "original_date",
	})
	require.NoError(t, err)

	assert.Equal(t, "My Feed", res.Title)
	assert.Equal(t, "line one\n\nline two", res.Description)
	assert.Equal(t, "en-US", res.Language)
	assert.Equal(t, "(c) me", res.Copyright)
	assert.Equal(t, "ed@example.com (Ed)", res.ManagingEditor)
	assert.Equal(t, "web@example.com (Web)", res.Webmaster)
	assert.Equal(t, 25, res.PostsPerFeed)
	assert.Equal(t, []string{"post", "newsitem"}, res.RecordTypes)
	assert.Equal(t, "originalsource-link", res.SourceLinkField)
	assert.Equal(t, "source_author", res.AuthorField)
	assert.Equal(t, "original_date", res.DateField)
}

func TestResolver_Resolve_PostsPerFeed(t *testing.T) {
	r := NewResolver(testDefaults(), 100)

	tbl := []struct {
		name  string
		in    any
		out   int
		fails bool
	}{
		{"absent", nil, 10, false},
		{"zero", 0, 10, false},
		{"negative", -5, 10, false},
		{"regular", 50, 50, false},
		{"at cap", 100, 100, false},
		{"above cap", 500, 100, false},
		{"int64", int64(7), 7, false},
		{"uint", uint(3), 3, false},
		{"float", 12.9, 12, false},
		{"numeric string", "25", 25, false},
		{"float string", " 7.9 ", 7, false},
		{"empty string", "", 10, false},
		{"json number", json.Number("30"), 30, false},
		{"huge", int64(1) << 40, 100, false},
		{"text", "abc", 0, true},
		{"bool", true, 0, true},
		{"map", map[string]any{"a": 1}, 0, true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(map[string]any{KeyPostsPerFeed: tt.in})
			if tt.fails {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, KeyPostsPerFeed)
				assert.Equal(t, Settings{}, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.out, res.PostsPerFeed)

			// resolution is idempotent
			again, err := r.Resolve(map[string]any{KeyPostsPerFeed: res.PostsPerFeed})
			require.NoError(t, err)
			assert.Equal(t, res.PostsPerFeed, again.PostsPerFeed)
		})
	}
}

func TestResolver_Resolve_CustomCap(t *testing.T) {
	r := NewResolver(testDefaults(), 5)

	res, err := r.Resolve(map[string]any{KeyPostsPerFeed: 50})
	require.NoError(t, err)
	assert.Equal(t, 5, res.PostsPerFeed)

	res, err = r.Resolve(map[string]any{KeyPostsPerFeed: 0})
	require.NoError(t, err)
	assert.Equal(t, 5, res.PostsPerFeed, "baseline is capped too")
}

func TestResolver_Resolve_RecordTypes(t *testing.T) {
	r := NewResolver(testDefaults(), 0)

	tbl := []struct {
		name  string
		in    any
		out   []string
		fails bool
	}{
		{"absent", nil, []string{"post"}, false},
		{"empty list", []string{}, []string{"post"}, false},
		{"all invalid", []string{"!!!", "  "}, []string{"post"}, false},
		{"strings", []string{"post", "page"}, []string{"post", "page"}, false},
		{"comma separated", "post, Page ,news", []string{"post", "page", "news"}, false},
		{"non-string entry", []any{"post", 42}, nil, true},
		{"wrong shape", 42, nil, true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(map[string]any{KeyRecordTypes: tt.in})
			if tt.fails {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, KeyRecordTypes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.out, res.RecordTypes)
		})
	}
}

func TestResolver_Resolve_ValidationReport(t *testing.T) {
	r := NewResolver(testDefaults(), 0)

	res, err := r.Resolve(map[string]any{
		KeyTitle:        []string{"not", "a", "string"},
		KeyPostsPerFeed: "many",
		KeyDateMeta:     3.14,
		KeyAuthorMeta:   "fine",
	})
	require.Error(t, err)
	assert.Equal(t, Settings{}, res, "never partially filled")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)
	assert.Contains(t, verr.Fields, KeyTitle)
	assert.Contains(t, verr.Fields, KeyPostsPerFeed)
	assert.Contains(t, verr.Fields, KeyDateMeta)
	assert.Contains(t, err.Error(), "invalid settings: ")
	assert.Contains(t, err.Error(), "posts_per_feed: not a number")
}

func TestResolver_Resolve_MissingPlatformDefaults(t *testing.T) {
	r := NewResolver(StaticDefaults{Clock: func() time.Time { return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC) }}, 0)

	res, err := r.Resolve(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, res.Title)
	assert.Empty(t, res.Description)
	assert.Empty(t, res.Language)
	assert.Equal(t, "Copyright 2023", res.Copyright)
	assert.Empty(t, res.ManagingEditor)
	assert.Empty(t, res.Webmaster)
	assert.Equal(t, 10, res.PostsPerFeed)
	assert.Equal(t, []string{"post"}, res.RecordTypes)

	// nil provider is allowed as well
	res, err = NewResolver(nil, 0).Resolve(nil)
	require.NoError(t, err)
	assert.Empty(t, res.Title)
}

func TestResolver_Resolve_RawRoundTrip(t *testing.T) {
	r := NewResolver(testDefaults(), 0)

	first, err := r.Resolve(map[string]any{
		KeyTitle:          "Feed & Co",
		KeyDescription:    "multi\nline",
		KeyPostsPerFeed:   1000,
		KeyRecordTypes:    "post,page",
		KeySourceLinkMeta: "src",
	})
	require.NoError(t, err)

	second, err := r.Resolve(first.Raw())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "Feed & Co", second.Title)

	t.Run("escaped markup", func(t *testing.T) {
		tbl := []struct {
			title, want string
		}{
			{"Use &lt;b&gt; tags", "Use tags"},
			{"&lt;b&gt;", "Example Site"},
			{"a &lt; b &amp;&amp; c", "a < b && c"},
			{"&amp;lt;i&amp;gt;nested&amp;lt;/i&amp;gt;", "nested"},
		}
		for _, tt := range tbl {
			first, err := r.Resolve(map[string]any{KeyTitle: tt.title, KeyDescription: "line one\n&lt;p&gt;two"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, first.Title, tt.title)

			second, err := r.Resolve(first.Raw())
			require.NoError(t, err)
			assert.Equal(t, first, second, tt.title)
		}
	})
}

func TestInstallDefaults(t *testing.T) {
	raw := InstallDefaults(testDefaults())
	assert.Equal(t, "Example Site", raw[KeyTitle])
	assert.Equal(t, "original_source_link", raw[KeySourceLinkMeta])
	assert.Equal(t, DefaultPostsPerFeed, raw[KeyPostsPerFeed])

	res, err := NewResolver(testDefaults(), 0).Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, "original_source_link", res.SourceLinkField)
	assert.Equal(t, "Copyright 2024 Example Site", res.Copyright)
	assert.Equal(t, "ru-RU", res.Language)
}
