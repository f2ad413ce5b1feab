package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/settings"
)

// ContentType of the generated document
const ContentType = "application/rss+xml; charset=UTF-8"

// date layouts, always rendered in UTC
const (
	pubDateLayout = time.RFC1123Z
	isoDateLayout = "2006-01-02T15:04:05Z"
)

// DefaultFeedPath is the conventional path the feed is served on
const DefaultFeedPath = "/refeed"

// SiteInfo describes the site the feed belongs to
type SiteInfo struct {
	BaseURL   string // site home, used for channel link
	FeedPath  string // path the feed is served on, used for atom self link
	Generator string // generator element text
}

// Document is a rendered feed
type Document struct {
	Body        []byte
	ContentType string
}

// Item is a feed item resolved from a record and settings
type Item struct {
	GUID            string
	GUIDIsPermaLink bool
	Author          string
	PubDate         string // RFC 1123 with numeric zone, +0000
	ISODate         string // ISO 8601, UTC
	Title           string
	Description     string // html, not yet CDATA-safe
	Link            string
}

// Generator creates RSS feeds from records, with per-item overrides from record metadata
type Generator struct {
	site     SiteInfo
	maxWords int
}

// NewGenerator creates a new feed generator
func NewGenerator(site SiteInfo) *Generator {
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	if site.FeedPath == "" {
		site.FeedPath = DefaultFeedPath
	}
	if !strings.HasPrefix(site.FeedPath, "/") {
		site.FeedPath = "/" + site.FeedPath
	}
	return &Generator{site: site, maxWords: DefaultExcerptWords}
}

// Synthesize renders RSS 2.0 document for records. Records expected to be already filtered
// and ordered newest first; anything above cfg.PostsPerFeed is dropped. Missing or broken
// per-item metadata falls back to record values and never fails the render.
func (g *Generator) Synthesize(cfg settings.Settings, records []domain.Record, now time.Time) (Document, error) {
	if cfg.PostsPerFeed > 0 && len(records) > cfg.PostsPerFeed {
		records = records[:cfg.PostsPerFeed]
	}

	for i, rec := range records {
		if err := checkRecord(rec); err != nil {
			return Document{}, &StructuralError{Index: i, Reason: err.Error()}
		}
	}

	now = now.UTC()
	pubDate := now
	items := make([]*RSSItem, 0, len(records))
	for i, rec := range records {
		if i == 0 || rec.Published.After(pubDate) {
			pubDate = rec.Published
		}
		items = append(items, g.toRSSItem(g.ResolveItem(cfg, rec)))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    nsAtom,
		DC:      nsDC,
		Channel: &RSSChannel{
			Title:          cfg.Title,
			Link:           g.site.BaseURL + "/",
			Description:    cfg.Description,
			Language:       cfg.Language,
			Copyright:      cfg.Copyright,
			ManagingEditor: cfg.ManagingEditor,
			WebMaster:      cfg.Webmaster,
			PubDate:        pubDate.UTC().Format(pubDateLayout),
			LastBuildDate:  now.Format(pubDateLayout),
			Generator:      g.site.Generator,
			AtomLink:       &AtomLink{Href: g.site.BaseURL + g.site.FeedPath, Rel: "self", Type: "application/rss+xml"},
			Items:          items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("marshal RSS: %w", err)
	}

	body := make([]byte, 0, len(xml.Header)+len(output))
	body = append(body, xml.Header...)
	body = append(body, output...)
	return Document{Body: body, ContentType: ContentType}, nil
}

// ResolveItem resolves feed item fields for the record: guid, author and date come from
// configured metadata keys when set and non-empty, otherwise from the record itself.
func (g *Generator) ResolveItem(cfg settings.Settings, rec domain.Record) Item {
	guid := strings.TrimSpace(rec.MetaValue(cfg.SourceLinkField))
	if guid == "" {
		guid = rec.Permalink
	}

	author := strings.TrimSpace(rec.MetaValue(cfg.AuthorField))
	if author == "" {
		author = rec.Author
	}

	published := rec.Published
	if ts, ok := parseDate(rec.MetaValue(cfg.DateField)); ok {
		published = ts
	}
	published = published.UTC()

	desc := rec.Excerpt
	if strings.TrimSpace(desc) == "" {
		desc = trimWords(rec.Body, g.maxWords)
	}

	return Item{
		GUID:            guid,
		GUIDIsPermaLink: true, // resolved guid is always treated as a permalink, even off-site
		Author:          author,
		PubDate:         published.Format(pubDateLayout),
		ISODate:         published.Format(isoDateLayout),
		Title:           rec.Title,
		Description:     autop(desc),
		Link:            rec.Permalink,
	}
}

func (g *Generator) toRSSItem(item Item) *RSSItem {
	return &RSSItem{
		Title:       item.Title,
		Link:        item.Link,
		Description: CDATA{Text: cdataSafe(item.Description)},
		GUID:        RSSGUID{IsPermaLink: item.GUIDIsPermaLink, Value: item.GUID},
		Author:      item.Author,
		Creator:     item.Author,
		PubDate:     item.PubDate,
		Date:        item.ISODate,
	}
}

// parseDate parses free-form date, values without zone are taken as UTC
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	ts, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || ts.IsZero() {
		return time.Time{}, false
	}
	return ts.UTC(), true
}

func checkRecord(rec domain.Record) error {
	if strings.TrimSpace(rec.Permalink) == "" {
		return fmt.Errorf("empty permalink")
	}
	if rec.Published.IsZero() {
		return fmt.Errorf("no publication time")
	}
	return nil
}
