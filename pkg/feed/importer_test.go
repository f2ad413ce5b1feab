package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/refeed/pkg/domain"
	"github.com/umputun/refeed/pkg/settings"
)

const importRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Source Feed</title>
	<link>http://source.example.com</link>
	<description>Source Description</description>
	<item>
		<title>Café Réunion, 2024!</title>
		<link>http://source.example.com/articles/cafe</link>
		<description>Article 1 &lt;script&gt;alert(1)&lt;/script&gt;description</description>
		<content:encoded><![CDATA[<p onclick="x()">Full content</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<author>test@example.com (Test Author)</author>
	</item>
	<item>
		<title></title>
		<link>http://source.example.com/articles/second-one/</link>
		<description>Article 2</description>
	</item>
	<item>
		<title>No link</title>
		<description>skipped</description>
	</item>
</channel>
</rss>`

func TestImporter_Import(t *testing.T) {
	var gotUA, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA, gotAccept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(importRSS))
	}))
	defer ts.Close()

	im := NewImporter(5*time.Second, "", "https://blog.example.com/")
	now := time.Date(2024, 5, 5, 5, 5, 5, 0, time.UTC)
	im.clock = func() time.Time { return now }

	cfg := settings.Settings{
		PostsPerFeed:    10,
		RecordTypes:     []string{"repost", "post"},
		SourceLinkField: "original_source_link",
		AuthorField:     "original_author",
		DateField:       "original_date",
	}
	records, err := im.Import(context.Background(), ts.URL, cfg)
	require.NoError(t, err)
	assert.Equal(t, "refeed/1.0", gotUA)
	assert.Contains(t, gotAccept, "application/rss+xml")

	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "repost", first.Type)
	assert.Equal(t, domain.StatusPublish, first.Status)
	assert.Equal(t, "Café Réunion, 2024!", first.Title)
	assert.Equal(t, "https://blog.example.com/cafe-reunion-2024", first.Permalink)
	assert.NotContains(t, first.Excerpt, "<script")
	assert.Equal(t, "<p>Full content</p>", first.Body)
	assert.Equal(t, "Test Author", first.Author)
	assert.Equal(t, now, first.Published)
	assert.Equal(t, map[string]string{
		"original_source_link": "http://source.example.com/articles/cafe",
		"original_author":      "Test Author",
		"original_date":        "2006-01-02T22:04:05Z",
	}, first.Meta)

	second := records[1]
	assert.Equal(t, "https://blog.example.com/second-one", second.Permalink)
	assert.Equal(t, map[string]string{"original_source_link": "http://source.example.com/articles/second-one/"}, second.Meta)

	// imported records render with overrides from the source
	doc, err := NewGenerator(SiteInfo{BaseURL: "https://blog.example.com"}).Synthesize(cfg, records, now)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Body), `<guid isPermaLink="true">http://source.example.com/articles/cafe</guid>`)
	assert.Contains(t, string(doc.Body), "<pubDate>Mon, 02 Jan 2006 22:04:05 +0000</pubDate>")
}

func TestImporter_ImportSourcePermalinks(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(importRSS))
	}))
	defer ts.Close()

	cfg := settings.Settings{PostsPerFeed: 10, RecordTypes: []string{"post"}}
	records, err := NewImporter(time.Second, "", "").Import(context.Background(), ts.URL, cfg)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "http://source.example.com/articles/cafe", records[0].Permalink)
	assert.Equal(t, "http://source.example.com/articles/second-one/", records[1].Permalink)
	assert.Empty(t, records[0].Meta, "no meta keys configured")
}

func TestImporter_ImportErrors(t *testing.T) {
	cfg := settings.Settings{PostsPerFeed: 10, RecordTypes: []string{"post"}}

	t.Run("bad status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()
		_, err := NewImporter(time.Second, "ua", "https://blog.example.com").Import(context.Background(), ts.URL, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 404")
	})

	t.Run("not a feed", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("just text"))
		}))
		defer ts.Close()
		_, err := NewImporter(time.Second, "ua", "https://blog.example.com").Import(context.Background(), ts.URL, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewImporter(time.Second, "ua", "https://blog.example.com").Import(context.Background(), "://nope", cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create request")
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewImporter(time.Second, "ua", "https://blog.example.com").Import(ctx, "http://127.0.0.1:1/feed", cfg)
		require.Error(t, err)
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello, World!", "hello-world"},
		{"  Crème brûlée  ", "creme-brulee"},
		{"Привет мир", "привет-мир"},
		{"2024 -- recap", "2024-recap"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
