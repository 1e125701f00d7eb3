package normalizer

import (
	"list-timeline/internal/list"
	"list-timeline/pkg/datemath"
)

// Normalizer converts raw records into tasks. It holds no mutable state and is safe for
// concurrent use.
type Normalizer struct {
	columns list.ColumnNames
	dates   *datemath.Parser
}

// New creates a Normalizer for the given column labels and date parser.
func New(columns list.ColumnNames, dates *datemath.Parser) *Normalizer {
	return &Normalizer{
		columns: columns.WithDefaults(),
		dates:   dates,
	}
}
