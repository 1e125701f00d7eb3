package normalizer

import (
	"strings"

	"cloud.google.com/go/civil"

	"list-timeline/internal/list/schema"
	"list-timeline/internal/model"
	"list-timeline/pkg/richtext"
)

var (
	nameFallbackKeys  = []string{"name", "Name", "title", "Title"}
	startFallbackKeys = []string{"date", "start_date", "start"}
)

// fields indexes one record for lookups by key.
type fields struct {
	values map[string]any
	texts  map[string]string // only keys carrying display text
}

// resolver tries one strategy and reports the value, the key it consumed and whether it
// produced anything.
type resolver[T any] func(f fields) (T, string, bool)

// firstOf runs resolvers in order and returns the first result.
func firstOf[T any](f fields, chain ...resolver[T]) (T, string, bool) {
	for _, r := range chain {
		if v, key, ok := r(f); ok {
			return v, key, true
		}
	}
	var zero T
	return zero, "", false
}

// textOf prefers the display text and falls back to the decoded value.
func (f fields) textOf(key string) string {
	if t, ok := f.texts[key]; ok {
		return t
	}
	v, ok := f.values[key]
	if !ok || model.IsEmptyValue(v) {
		return ""
	}
	return richtext.Decode(v)
}

func mappedText(s schema.Schema, column string) resolver[string] {
	return func(f fields) (string, string, bool) {
		key, ok := s.FieldKey(column)
		if !ok {
			return "", "", false
		}
		name := f.textOf(key)
		return name, key, name != ""
	}
}

func commonText(keys ...string) resolver[string] {
	return func(f fields) (string, string, bool) {
		for _, key := range keys {
			if name := f.textOf(key); name != "" {
				return name, key, true
			}
		}
		return "", "", false
	}
}

func (n *Normalizer) mappedDate(s schema.Schema, column string) resolver[civil.Date] {
	return func(f fields) (civil.Date, string, bool) {
		key, ok := s.FieldKey(column)
		if !ok {
			return civil.Date{}, "", false
		}
		d, ok := n.dates.ParseValue(f.values[key])
		return d, key, ok
	}
}

func (n *Normalizer) commonDate(keys ...string) resolver[civil.Date] {
	return func(f fields) (civil.Date, string, bool) {
		for _, key := range keys {
			if d, ok := n.dates.ParseValue(f.values[key]); ok {
				return d, key, true
			}
		}
		return civil.Date{}, "", false
	}
}

// resolveCategory maps option ids to labels. Unknown ids pass through unchanged and
// multi-select values are joined with ", ".
func resolveCategory(s schema.Schema, raw any) string {
	label := func(id string) string {
		if l, ok := s.OptionLabel(id); ok && l != "" {
			return l
		}
		return id
	}

	switch v := raw.(type) {
	case string:
		return label(v)
	case []any:
		labels := make([]string, 0, len(v))
		for _, item := range v {
			if id, ok := item.(string); ok && id != "" {
				labels = append(labels, label(id))
			}
		}
		return strings.Join(labels, ", ")
	default:
		return richtext.Decode(v)
	}
}
