package settings

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
)

var stripPolicy = bluemonday.StrictPolicy()

// SanitizeKey reduces s to a key-safe token: lowercase, only a-z, 0-9, underscore and hyphen
func SanitizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// maxSanitizePasses bounds unescaping of nested entities like &amp;lt;
const maxSanitizePasses = 8

// SanitizeText strips html tags and collapses whitespace. Multiline text keeps line breaks,
// single-line text is joined with single spaces. Entities are decoded and the result cleaned
// again until nothing changes, so sanitizing the output once more returns it as is.
// Text still changing after maxSanitizePasses is dropped.
func SanitizeText(s string, multiline bool) string {
	for range maxSanitizePasses {
		next := sanitizePass(s, multiline)
		if next == s {
			return s
		}
		s = next
	}
	return ""
}

func sanitizePass(s string, multiline bool) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	if !multiline {
		return strings.Join(strings.Fields(s), " ")
	}

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// NormalizeLanguage converts locale like ru_RU to a BCP 47 tag (ru-RU).
// Values which can't be parsed are returned as is.
func NormalizeLanguage(s string) string {
	if s == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return s
	}
	return tag.String()
}

func defaultCopyright(d DefaultsProvider) string {
	now := d.Now()
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return strings.TrimSpace(fmt.Sprintf("Copyright %d %s", now.Year(), d.SiteName()))
}

// contact formats "email (name)", empty if there is no email
func contact(email, name string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	if name = strings.TrimSpace(name); name == "" {
		return email
	}
	return fmt.Sprintf("%s (%s)", email, name)
}
