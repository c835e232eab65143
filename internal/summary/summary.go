package summary

import (
	"errors"
	"fmt"

	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
)

var ErrNotNumeric = errors.New("column is not numeric")

// Summary is the duration report for one column.
type Summary struct {
	Column       string        `json:"column"`
	Stats        Stats         `json:"stats"`
	Buckets      []BucketCount `json:"buckets"`
	Unclassified int           `json:"unclassified"`
}

// NumericValues returns the non-missing values of col as float64.
func NumericValues(col *table.Column) ([]float64, error) {
	out := make([]float64, 0, len(col.Values))
	for i, v := range col.Values {
		if table.IsMissing(v) {
			continue
		}
		switch x := v.(type) {
		case int64:
			out = append(out, float64(x))
		case int32:
			out = append(out, float64(x))
		case int:
			out = append(out, float64(x))
		case float64:
			out = append(out, x)
		case float32:
			out = append(out, float64(x))
		default:
			return nil, fmt.Errorf("%w: %s row %d holds %q", ErrNotNumeric, col.Name, i+1, fmt.Sprint(v))
		}
	}
	return out, nil
}

// Summarize describes and buckets the named duration column of t.
func Summarize(t *table.Table, column string) (*Summary, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, fmt.Errorf("duration column %s not found", column)
	}
	values, err := NumericValues(col)
	if err != nil {
		return nil, err
	}

	buckets := Frequencies(values)
	unclassified := 0
	if last := buckets[len(buckets)-1]; last.Label == Unclassified {
		unclassified = last.Count
	}
	return &Summary{
		Column:       column,
		Stats:        Describe(values),
		Buckets:      buckets,
		Unclassified: unclassified,
	}, nil
}
