// Package settings resolves a raw, loosely typed settings bag into the canonical feed
// configuration. Resolution is a pure transform, the only collaborator is DefaultsProvider
// supplying site-level values for empty fields.
package settings

import (
	"time"

	"github.com/umputun/refeed/pkg/domain"
)

// raw settings keys, as persisted by the settings store
const (
	KeyTitle          = "feed_title"
	KeyDescription    = "feed_description"
	KeyLanguage       = "feed_language"
	KeyCopyright      = "feed_copyright"
	KeyManagingEditor = "managing_editor"
	KeyWebmaster      = "webmaster"
	KeyPostsPerFeed   = "posts_per_feed"
	KeyRecordTypes    = "post_types"
	KeySourceLinkMeta = "source_meta_key"
	KeyAuthorMeta     = "author_meta_key"
	KeyDateMeta       = "date_meta_key"
)

const (
	// DefaultPostsPerFeed is used when posts_per_feed is absent or not positive
	DefaultPostsPerFeed = 10
	// DefaultMaxPosts caps posts_per_feed to bound the feed size
	DefaultMaxPosts = 100
	// DefaultSourceLinkMeta is the source link metadata key installed on first run
	DefaultSourceLinkMeta = "original_source_link"
)

// Settings is the canonical feed configuration, immutable once resolved
type Settings struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Language       string `json:"language"`
	Copyright      string `json:"copyright"`
	ManagingEditor string `json:"managing_editor"`
	Webmaster      string `json:"webmaster"`

	PostsPerFeed int      `json:"posts_per_feed" validate:"min=1"`
	RecordTypes  []string `json:"record_types" validate:"min=1,dive,required,keytoken"`

	// metadata keys consulted for per-item overrides, empty means "use platform value"
	SourceLinkField string `json:"source_link_field" validate:"omitempty,keytoken"`
	AuthorField     string `json:"author_field" validate:"omitempty,keytoken"`
	DateField       string `json:"date_field" validate:"omitempty,keytoken"`
}

// Raw renders settings back into the persisted raw shape. Resolving the result
// produces the same settings.
func (s Settings) Raw() map[string]any {
	types := make([]string, len(s.RecordTypes))
	copy(types, s.RecordTypes)
	return map[string]any{
		KeyTitle:          s.Title,
		KeyDescription:    s.Description,
		KeyLanguage:       s.Language,
		KeyCopyright:      s.Copyright,
		KeyManagingEditor: s.ManagingEditor,
		KeyWebmaster:      s.Webmaster,
		KeyPostsPerFeed:   s.PostsPerFeed,
		KeyRecordTypes:    types,
		KeySourceLinkMeta: s.SourceLinkField,
		KeyAuthorMeta:     s.AuthorField,
		KeyDateMeta:       s.DateField,
	}
}

// DefaultsProvider supplies platform-level values for unset settings
type DefaultsProvider interface {
	SiteName() string
	SiteDescription() string
	Locale() string
	AdminEmail() string
	Now() time.Time
}

// StaticDefaults is a DefaultsProvider backed by fixed values
type StaticDefaults struct {
	Name        string
	Description string
	Lang        string
	Email       string
	Clock       func() time.Time // defaults to time.Now
}

// SiteName returns site name
func (d StaticDefaults) SiteName() string { return d.Name }

// SiteDescription returns site tagline
func (d StaticDefaults) SiteDescription() string { return d.Description }

// Locale returns site locale, like en_US
func (d StaticDefaults) Locale() string { return d.Lang }

// AdminEmail returns site admin contact email
func (d StaticDefaults) AdminEmail() string { return d.Email }

// Now returns current UTC time
func (d StaticDefaults) Now() time.Time {
	if d.Clock != nil {
		return d.Clock().UTC()
	}
	return time.Now().UTC()
}

// InstallDefaults returns the raw settings stored on first run, before any update
func InstallDefaults(defaults DefaultsProvider) map[string]any {
	return map[string]any{
		KeyTitle:          defaults.SiteName(),
		KeyDescription:    defaults.SiteDescription(),
		KeyLanguage:       defaults.Locale(),
		KeyCopyright:      defaultCopyright(defaults),
		KeyManagingEditor: contact(defaults.AdminEmail(), defaults.SiteName()),
		KeyWebmaster:      contact(defaults.AdminEmail(), "Webmaster"),
		KeyPostsPerFeed:   DefaultPostsPerFeed,
		KeyRecordTypes:    []string{domain.DefaultRecordType},
		KeySourceLinkMeta: DefaultSourceLinkMeta,
		KeyAuthorMeta:     "",
		KeyDateMeta:       "",
	}
}
