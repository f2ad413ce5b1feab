package feed

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

// DefaultExcerptWords is the word cap for summaries derived from record body
const DefaultExcerptWords = 55

const ellipsis = "&hellip;"

var (
	reParagraphBreak = regexp.MustCompile(`\n\s*\n`)
	reBlockStart     = regexp.MustCompile(`(?i)^<(?:p|div|ul|ol|dl|table|blockquote|pre|h[1-6]|figure|section|article|hr)[\s/>]`)
)

// stripTags returns the text content of an html fragment, script and style content dropped
func stripTags(s string) string {
	var b strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			// io.EOF or broken markup, either way text collected so far is the result
			return b.String()
		case xhtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case xhtml.StartTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) {
				skip++
			}
			b.WriteByte(' ')
		case xhtml.EndTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case xhtml.SelfClosingTagToken:
			b.WriteByte(' ')
		case xhtml.CommentToken, xhtml.DoctypeToken:
		}
	}
}

func isRawTextTag(name []byte) bool {
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// trimWords makes a plain-text summary of an html fragment limited to n words.
// The result is html-escaped, with ellipsis appended if anything was cut.
func trimWords(s string, n int) string {
	words := strings.Fields(stripTags(s))
	if len(words) == 0 {
		return ""
	}
	cut := n > 0 && len(words) > n
	if cut {
		words = words[:n]
	}
	res := html.EscapeString(strings.Join(words, " "))
	if cut {
		res += ellipsis
	}
	return res
}

// autop wraps text paragraphs (separated by blank lines) into <p> and turns
// remaining single line breaks into <br />. Blocks already starting with
// a block-level tag are kept as is.
func autop(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, para := range reParagraphBreak.Split(s, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if reBlockStart.MatchString(para) {
			b.WriteString(para)
			b.WriteString("\n")
			continue
		}
		lines := strings.Split(para, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimSpace(l)
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br />\n"))
		b.WriteString("</p>\n")
	}
	return b.String()
}

// cdataSafe prepares text for a single CDATA section: "]]>" can't appear inside it,
// and characters not allowed in XML are replaced.
func cdataSafe(s string) string {
	s = strings.ReplaceAll(s, "]]>", "]]&gt;")
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return '\uFFFD'
	}, s)
}

// isXMLChar reports whether r is in the XML 1.0 Char production
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
