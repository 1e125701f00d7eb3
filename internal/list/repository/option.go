package repository

// ListMetadataOptions holds the parameters for fetching list metadata.
type ListMetadataOptions struct {
	ListID         string
	SampleRecordID string // some APIs only expose list metadata next to a record
}

// ColumnDescriptor is one entry of an explicit column schema.
type ColumnDescriptor struct {
	Name    string // display name, e.g. "Start Date"
	Key     string // field key used in records
	Type    string // e.g. "text", "date", "select"
	Options []ColumnOption
}

// ColumnOption is one choice of a select-type column.
type ColumnOption struct {
	ID    string
	Label string
}

// ListMetadata describes a list. Columns is empty when no explicit schema is available.
type ListMetadata struct {
	Title       string
	Description string
	Columns     []ColumnDescriptor
}

// Export is a human-readable tabular export: headers are display names and cells are
// rendered values.
type Export struct {
	Columns []string
	Rows    []map[string]string
}
