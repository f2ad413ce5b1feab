package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/umputun/refeed/pkg/domain"
)

// Resolver validates and normalizes raw settings into canonical Settings
type Resolver struct {
	defaults DefaultsProvider
	maxPosts int
	validate *validator.Validate
}

// NewResolver makes a resolver with the given defaults provider and posts cap.
// Non-positive maxPosts uses DefaultMaxPosts.
func NewResolver(defaults DefaultsProvider, maxPosts int) *Resolver {
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}
	if defaults == nil {
		defaults = StaticDefaults{}
	}
	v := validator.New()
	_ = v.RegisterValidation("keytoken", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == SanitizeKey(s)
	})
	return &Resolver{defaults: defaults, maxPosts: maxPosts, validate: v}
}

// Resolve turns raw settings into canonical Settings. Any field with a type that can't be
// coerced is reported in *ValidationError, all other problems are fixed by defaulting.
func (r *Resolver) Resolve(raw map[string]any) (Settings, error) {
	verr := &ValidationError{}

	text := func(key string, multiline bool) string {
		s, err := stringValue(raw[key])
		if err != nil {
			verr.add(key, err.Error())
			return ""
		}
		return SanitizeText(s, multiline)
	}

	res := Settings{
		Title:          text(KeyTitle, false),
		Description:    text(KeyDescription, true),
		Language:       text(KeyLanguage, false),
		Copyright:      text(KeyCopyright, false),
		ManagingEditor: text(KeyManagingEditor, false),
		Webmaster:      text(KeyWebmaster, false),
	}

	posts, err := intValue(raw[KeyPostsPerFeed])
	if err != nil {
		verr.add(KeyPostsPerFeed, err.Error())
	}
	res.PostsPerFeed = r.ClampPosts(posts)

	types, err := r.recordTypes(raw[KeyRecordTypes])
	if err != nil {
		verr.add(KeyRecordTypes, err.Error())
	}
	res.RecordTypes = types

	key := func(k string) string {
		s, err := stringValue(raw[k])
		if err != nil {
			verr.add(k, err.Error())
			return ""
		}
		return SanitizeKey(s)
	}
	res.SourceLinkField = key(KeySourceLinkMeta)
	res.AuthorField = key(KeyAuthorMeta)
	res.DateField = key(KeyDateMeta)

	if verr.HasErrors() {
		return Settings{}, verr
	}

	r.applyDefaults(&res)

	if err := r.check(res); err != nil {
		return Settings{}, err
	}
	return res, nil
}

// ClampPosts maps posts-per-feed into [1, cap], non-positive values become the default
func (r *Resolver) ClampPosts(n int) int {
	switch {
	case n <= 0:
		return min(DefaultPostsPerFeed, r.maxPosts)
	case n > r.maxPosts:
		return r.maxPosts
	default:
		return n
	}
}

// applyDefaults fills empty descriptive fields from the defaults provider
func (r *Resolver) applyDefaults(s *Settings) {
	if s.Title == "" {
		s.Title = SanitizeText(r.defaults.SiteName(), false)
	}
	if s.Description == "" {
		s.Description = SanitizeText(r.defaults.SiteDescription(), true)
	}
	if s.Language == "" {
		s.Language = SanitizeText(r.defaults.Locale(), false)
	}
	s.Language = NormalizeLanguage(s.Language)
	if s.Copyright == "" {
		s.Copyright = SanitizeText(defaultCopyright(r.defaults), false)
	}
	if s.ManagingEditor == "" {
		s.ManagingEditor = SanitizeText(contact(r.defaults.AdminEmail(), r.defaults.SiteName()), false)
	}
	if s.Webmaster == "" {
		s.Webmaster = SanitizeText(contact(r.defaults.AdminEmail(), "Webmaster"), false)
	}
}

// check verifies resolved settings invariants
func (r *Resolver) check(s Settings) error {
	verr := &ValidationError{}
	if err := r.validate.Struct(s); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return fmt.Errorf("validate settings: %w", err)
		}
		for _, fe := range ve {
			verr.add(fe.Namespace(), "failed "+fe.Tag())
		}
	}
	if err := r.validate.Var(s.PostsPerFeed, fmt.Sprintf("max=%d", r.maxPosts)); err != nil {
		verr.add(KeyPostsPerFeed, fmt.Sprintf("exceeds %d", r.maxPosts))
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// recordTypes accepts a list of strings or a comma separated string
func (r *Resolver) recordTypes(v any) ([]string, error) {
	var entries []string
	switch val := v.(type) {
	case nil:
	case string:
		entries = strings.Split(val, ",")
	case []string:
		entries = val
	case []any:
		for i, e := range val {
			s, ok := e.(string)
			if !ok {
				return []string{domain.DefaultRecordType}, fmt.Errorf("entry %d is %T, not a string", i, e)
			}
			entries = append(entries, s)
		}
	default:
		return []string{domain.DefaultRecordType}, fmt.Errorf("unsupported type %T", v)
	}

	res := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		k := SanitizeKey(e)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		res = append(res, k)
	}
	if len(res) == 0 {
		return []string{domain.DefaultRecordType}, nil
	}
	return res, nil
}

// stringValue accepts string or nil
func stringValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", fmt.Errorf("unsupported type %T, expected string", v)
	}
}

// intValue coerces numbers and numeric strings to int, absent value is 0
func intValue(v any) (int, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return clampInt64(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", val.String())
		}
		return floatToInt(f)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return clampInt64(n), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", val)
		}
		return floatToInt(f)
	case float32:
		return floatToInt(float64(val))
	case float64:
		return floatToInt(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive // everything else is not a number
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt32 {
			return math.MaxInt32, nil
		}
		return int(u), nil
	default:
		return 0, fmt.Errorf("unsupported type %T, expected number", v)
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", f)
	}
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32, nil
	case f < math.MinInt32:
		return math.MinInt32, nil
	}
	return int(f), nil
}

func clampInt64(n int64) int {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return int(n)
}
