package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
)

// timestampLayouts are tried in order. Layouts without a zone parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
}

// ParseError reports a value that could not be read as a timestamp.
type ParseError struct {
	Row   int // 1-based data row
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: unknown timestamp format, unable to parse %q", e.Row, e.Value)
}

// ParseTimestamp parses s with the supported layouts and returns the instant as
// a UTC wall-clock time. Offsets, when present, are applied before dropping.
func ParseTimestamp(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown timestamp format %q", s)
}

// CoerceTimestamps replaces every value of col with its normalized timestamp.
// Missing values stay missing. Either the whole column is converted or, on the
// first unparseable value, nothing is changed and a *ParseError is returned.
func CoerceTimestamps(col *table.Column) error {
	out := make([]any, len(col.Values))
	for i, v := range col.Values {
		if table.IsMissing(v) {
			out[i] = nil
			continue
		}
		switch x := v.(type) {
		case time.Time:
			out[i] = x.UTC()
		case string:
			ts, err := ParseTimestamp(x)
			if err != nil {
				return &ParseError{Row: i + 1, Value: x}
			}
			out[i] = ts
		default:
			return &ParseError{Row: i + 1, Value: fmt.Sprint(v)}
		}
	}
	col.Values = out
	return nil
}
