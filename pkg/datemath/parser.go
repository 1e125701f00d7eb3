package datemath

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/araddon/dateparse"
)

// NewParser creates a parser for the given IANA timezone, e.g. "Asia/Ho_Chi_Minh".
// An empty timezone or "Local" uses the host's local zone.
func NewParser(timezone string) (*Parser, error) {
	if timezone == "" || strings.EqualFold(timezone, "local") {
		return &Parser{location: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the zone used for timestamp conversion.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Today returns the calendar date of now in the parser's location.
func (p *Parser) Today(now time.Time) civil.Date {
	return civil.DateOf(now.In(p.location))
}

// ParseValue converts an arbitrary field value into a calendar date.
//
// Rules, first success wins:
//  1. empty or falsy values yield no result
//  2. strict YYYY-MM-DD
//  3. all-digit strings of at least 10 digits are Unix timestamps (milliseconds above 1e12)
//  4. free-form date text
//
// The boolean is false when no date could be derived; that is not an error.
func (p *Parser) ParseValue(v any) (civil.Date, bool) {
	s, ok := valueString(v)
	if !ok {
		return civil.Date{}, false
	}
	return p.ParseString(s)
}

// ParseString applies the ParseValue rules to a string.
func (p *Parser) ParseString(s string) (civil.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, false
	}

	if isoDatePattern.MatchString(s) {
		if d, err := civil.ParseDate(s); err == nil {
			return d, true
		}
	}

	if len(s) >= minTimestampDigits && isDigits(s) {
		if d, ok := p.fromTimestamp(s); ok {
			return d, true
		}
	}

	t, err := dateparse.ParseIn(s, p.location)
	if err != nil {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

func (p *Parser) fromTimestamp(s string) (civil.Date, bool) {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return civil.Date{}, false
	}

	var t time.Time
	if float64(ts) > millisecondThreshold {
		t = time.UnixMilli(ts)
	} else {
		t = time.Unix(ts, 0)
	}
	return civil.DateOf(t.In(p.location)), true
}

// valueString renders v as the string the parsing rules operate on.
// Falsy values (nil, "", 0, false, empty collections) report false.
func valueString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case json.Number:
		return val.String(), val != "" && val != "0"
	case float64:
		if val == 0 {
			return "", false
		}
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10), true
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), val != 0
	case int64:
		return strconv.FormatInt(val, 10), val != 0
	case bool:
		return "", false
	case []any:
		// Slack date columns sometimes wrap a single value in a list.
		if len(val) == 1 {
			return valueString(val[0])
		}
		return "", false
	case []string:
		if len(val) == 1 {
			return val[0], val[0] != ""
		}
		return "", false
	default:
		return "", false
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
