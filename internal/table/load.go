package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads the file at path, choosing the reader by extension:
// .parquet uses ReadParquet, .tsv reads tab-separated values, anything else is
// read as CSV.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat input: %w", err)
		}
		return ReadParquet(f, info.Size())
	case ".tsv":
		return ReadCSV(f, CSVOptions{Comma: '\t'})
	default:
		return ReadCSV(f, CSVOptions{})
	}
}
