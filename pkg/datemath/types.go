package datemath

import (
	"regexp"
	"time"
)

// isoDatePattern matches the strict YYYY-MM-DD form Slack uses for date columns.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const (
	// minTimestampDigits is the shortest digit string treated as a Unix timestamp.
	minTimestampDigits = 10
	// millisecondThreshold separates second timestamps from millisecond timestamps.
	millisecondThreshold = 1e12
)

// Parser normalizes heterogeneous date values into calendar dates.
// Timestamps are converted to dates in the parser's location.
type Parser struct {
	location *time.Location
}
