package table

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"
)

// readBatch is the number of rows pulled from a row group per ReadRows call.
const readBatch = 256

const secondsPerDay = 24 * 60 * 60

// ReadParquet loads a Parquet file with a flat schema. Each top-level field
// becomes one column.
func ReadParquet(r io.ReaderAt, size int64) (*Table, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	fields := pf.Schema().Fields()
	if len(fields) == 0 {
		return nil, ErrNoHeader
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		if !f.Leaf() || f.Repeated() {
			return nil, fmt.Errorf("parquet column %q: nested and repeated columns are not supported", f.Name())
		}
		names[i] = f.Name()
	}

	t, err := New(names)
	if err != nil {
		return nil, err
	}

	buf := make([]parquet.Row, readBatch)
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(t, rg, fields, buf); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func readRowGroup(t *Table, rg parquet.RowGroup, fields []parquet.Field, buf []parquet.Row) error {
	rows := rg.Rows()
	defer func() { _ = rows.Close() }()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			values := make([]any, len(fields))
			for _, v := range row {
				col := v.Column()
				if col < 0 || col >= len(fields) {
					continue
				}
				values[col] = parquetValue(v, fields[col])
			}
			if err := t.AppendRow(values); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read parquet rows: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

func parquetValue(v parquet.Value, f parquet.Field) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		if isDate(f) {
			return time.Unix(int64(v.Int32())*secondsPerDay, 0).UTC()
		}
		return int64(v.Int32())
	case parquet.Int64:
		if unit, ok := timestampUnit(f); ok {
			return time.Unix(0, v.Int64()*int64(unit)).UTC()
		}
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}

// timestampUnit reports the tick size of a TIMESTAMP logical column.
func timestampUnit(f parquet.Field) (time.Duration, bool) {
	lt := f.Type().LogicalType()
	if lt == nil || lt.Timestamp == nil {
		return 0, false
	}
	switch {
	case lt.Timestamp.Unit.Nanos != nil:
		return time.Nanosecond, true
	case lt.Timestamp.Unit.Micros != nil:
		return time.Microsecond, true
	default:
		return time.Millisecond, true
	}
}

// isDate reports whether f is a DATE logical column, stored as days since the
// Unix epoch.
func isDate(f parquet.Field) bool {
	lt := f.Type().LogicalType()
	return lt != nil && lt.Date != nil
}
