package schema

import (
	"time"

	"list-timeline/internal/list"
	"list-timeline/internal/model"
)

// Source tells where a schema was learned from.
type Source string

const (
	SourceStatic     Source = "static"
	SourceDescriptor Source = "descriptor"
	SourceExport     Source = "export"
)

const (
	defaultOptionPrefix = "Opt"
	defaultIgnored      = "Created"
)

var selectTypes = map[string]bool{
	"select":       true,
	"multi_select": true,
}

// Config holds the static knowledge the discoverer starts from.
type Config struct {
	Columns        list.ColumnNames
	FieldOverrides map[string]string // column label -> field key, wins over discovery
	StaticOptions  map[string]string // option id -> label, discovery wins
	OptionPrefix   string            // option ids start with it, "Opt" by default
	IgnoredColumns []string          // export columns never mapped, "Created" by default
}

// DiscoverInput is the input for Discover.
type DiscoverInput struct {
	ListID string
	Force  bool
	Sample []model.RawRecord // records already fetched by the caller; fetched when empty
}

// Schema is an immutable snapshot of what is known about one list. Callers must not
// modify its maps.
type Schema struct {
	ListID       string
	Columns      map[string]string // column label -> field key
	Options      map[string]string // option id -> label
	Info         model.ListInfo
	Source       Source
	DiscoveredAt time.Time
}

// FieldKey returns the field key mapped to a column label.
func (s Schema) FieldKey(column string) (string, bool) {
	key, ok := s.Columns[column]
	return key, ok && key != ""
}

// OptionLabel returns the label of an option id.
func (s Schema) OptionLabel(id string) (string, bool) {
	label, ok := s.Options[id]
	return label, ok
}

// Complete reports whether the schema needs no further discovery: it has columns and
// either option labels or an explicit descriptor behind it.
func (s Schema) Complete() bool {
	if len(s.Columns) == 0 {
		return false
	}
	return len(s.Options) > 0 || s.Source == SourceDescriptor
}
