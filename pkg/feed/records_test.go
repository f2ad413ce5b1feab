package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/refeed/pkg/domain"
)

func TestDecodeRecords(t *testing.T) {
	data := `[
		{"id": 1, "title": "A", "permalink": "http://x/a", "author": "Bob",
		 "published": "2024-01-01T00:00:00Z", "meta": {"src": "http://ext/a"}},
		{"id": 2, "type": "page", "status": "draft", "title": "B", "permalink": "http://x/b",
		 "published": "2024-01-02T03:00:00+03:00", "excerpt": "short", "body": "long"}
	]`

	records, err := DecodeRecords(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.Record{
		ID: 1, Type: "post", Status: "publish", Title: "A", Permalink: "http://x/a", Author: "Bob",
		Published: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Meta: map[string]string{"src": "http://ext/a"},
	}, records[0])

	assert.Equal(t, "page", records[1].Type)
	assert.Equal(t, domain.StatusDraft, records[1].Status)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), records[1].Published)
	assert.Equal(t, "short", records[1].Excerpt)
	assert.Equal(t, "long", records[1].Body)
}

func TestDecodeRecords_Empty(t *testing.T) {
	records, err := DecodeRecords(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeRecords_Malformed(t *testing.T) {
	tbl := []struct {
		name  string
		data  string
		index int
	}{
		{"not json", `{{{`, -1},
		{"object instead of list", `{"title": "x"}`, -1},
		{"null", `null`, -1},
		{"meta of wrong type", `[{"permalink": "http://x", "published": "2024-01-01T00:00:00Z", "meta": {"a": 1}}]`, -1},
		{"bad time", `[{"permalink": "http://x", "published": "yesterday"}]`, 0},
		{"no permalink", `[{"permalink": "http://x", "published": "2024-01-01T00:00:00Z"}, {"published": "2024-01-01T00:00:00Z"}]`, 1},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeRecords(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Nil(t, records)
			var serr *StructuralError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.index, serr.Index)
			assert.Contains(t, err.Error(), "malformed record")
		})
	}
}
