package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/settings"
)

// Importer fetches a remote RSS/Atom feed and turns its items into local records.
// Source link, author and date of each item go into the record metadata keys
// configured in settings, so the generated feed points back to the originals.
type Importer struct {
	client    *http.Client
	userAgent string
	baseURL   string
	policy    *bluemonday.Policy
	clock     func() time.Time
}

// NewImporter creates a new feed importer. With non-empty baseURL records get local
// permalinks under it, otherwise the source item link is the permalink.
func NewImporter(timeout time.Duration, userAgent, baseURL string) *Importer {
	if userAgent == "" {
		userAgent = "refeed/1.0"
	}
	return &Importer{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		baseURL:   strings.TrimRight(baseURL, "/"),
		policy:    bluemonday.UGCPolicy(),
		clock:     time.Now,
	}
}

// Import fetches feedURL and converts items to records, items without link are skipped
func (im *Importer) Import(ctx context.Context, feedURL string, cfg settings.Settings) ([]domain.Record, error) {
	body, err := im.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	recordType := domain.DefaultRecordType
	if len(cfg.RecordTypes) > 0 {
		recordType = cfg.RecordTypes[0]
	}

	res := make([]domain.Record, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		rec := domain.Record{
			Type:      recordType,
			Status:    domain.StatusPublish,
			Title:     strings.TrimSpace(item.Title),
			Permalink: im.permalink(item.Title, link),
			Excerpt:   im.policy.Sanitize(item.Description),
			Body:      im.policy.Sanitize(item.Content),
			Published: im.clock().UTC(),
			Meta:      map[string]string{},
		}

		author := ""
		if item.Author != nil {
			author = strings.TrimSpace(item.Author.Name)
		}
		rec.Author = author

		var published *time.Time
		switch {
		case item.PublishedParsed != nil:
			published = item.PublishedParsed
		case item.UpdatedParsed != nil:
			published = item.UpdatedParsed
		}

		if cfg.SourceLinkField != "" {
			rec.Meta[cfg.SourceLinkField] = link
		}
		if cfg.AuthorField != "" && author != "" {
			rec.Meta[cfg.AuthorField] = author
		}
		if cfg.DateField != "" && published != nil {
			rec.Meta[cfg.DateField] = published.UTC().Format(time.RFC3339)
		}
		res = append(res, rec)
	}
	return res, nil
}

// fetch retrieves content from a URL
func (im *Importer) fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", im.userAgent)
	addFeedHeaders(req)

	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// permalink makes local record URL from title, falls back to the last segment of the source link.
// Without base URL the source link is returned.
func (im *Importer) permalink(title, link string) string {
	if im.baseURL == "" {
		return link
	}
	slug := slugify(title)
	if slug == "" {
		if u, err := url.Parse(link); err == nil {
			slug = slugify(path.Base(strings.TrimRight(u.Path, "/")))
		}
	}
	if slug == "" {
		slug = "item"
	}
	return im.baseURL + "/" + slug
}

// slugify lowercases s, strips diacritics and joins alphanumeric runs with dashes
func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
