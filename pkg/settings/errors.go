package settings

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports raw settings fields which can't be coerced to their canonical types.
// The caller should reject the update and keep prior settings.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

// HasErrors checks if any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid settings: " + strings.Join(parts, "; ")
}
