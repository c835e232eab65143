package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const utf8BOM = "\uFEFF"

// DefaultNATokens are the cell values loaded as missing, in addition to "".
var DefaultNATokens = []string{"NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A"}

// CSVOptions configures ReadCSV. The zero value reads comma-separated input
// with DefaultNATokens.
type CSVOptions struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each cell.
	TrimSpace bool

	// NATokens overrides DefaultNATokens when non-nil.
	NATokens []string
}

// ReadCSV loads a whole CSV document with a header row. Integer-looking cells
// become int64, finite decimal cells float64, NA tokens nil, and everything
// else stays a string.
func ReadCSV(r io.Reader, opt CSVOptions) (*Table, error) {
	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	// Width is checked below so the error can name the line.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	t, err := New(normalizeHeader(header))
	if err != nil {
		return nil, err
	}

	tokens := opt.NATokens
	if tokens == nil {
		tokens = DefaultNATokens
	}
	na := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		na[tok] = struct{}{}
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(record) != len(header) {
			return nil, fmt.Errorf("line %d: %w: expected %d fields, got %d", line, ErrRaggedRow, len(header), len(record))
		}
		row := make([]any, len(record))
		for i, cell := range record {
			if opt.TrimSpace {
				cell = strings.TrimSpace(cell)
			}
			row[i] = parseCell(cell, na)
		}
		if err := t.AppendRow(row); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return t, nil
}

// normalizeHeader strips a leading BOM and surrounding spaces. Blank header
// cells get a positional name.
func normalizeHeader(h []string) []string {
	out := make([]string, len(h))
	for i, name := range h {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		out[i] = name
	}
	return out
}

func parseCell(s string, na map[string]struct{}) any {
	if s == "" {
		return nil
	}
	if _, ok := na[s]; ok {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// "inf" and "Infinity" are text, not numbers.
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
		return f
	}
	return s
}
