package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderjulianmartinez/upload-watch/internal/schema"
)

var timestampTypes = map[string]struct{}{
	"date":          {},
	"datetime":      {},
	"datetime2":     {},
	"smalldatetime": {},
	"timestamp":     {},
	"timestamptz":   {},
}

var integerTypes = map[string]struct{}{
	"int":         {},
	"integer":     {},
	"tinyint":     {},
	"smallint":    {},
	"mediumint":   {},
	"bigint":      {},
	"int2":        {},
	"int4":        {},
	"int8":        {},
	"serial":      {},
	"smallserial": {},
	"bigserial":   {},
}

// TypeFor maps a SQL column type to the expected upload type. Types other
// than calendar date/time and integer types carry no expectation.
func TypeFor(sqlType string) (schema.Type, bool) {
	base := strings.ToLower(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	if fields := strings.Fields(base); len(fields) > 0 {
		base = fields[0]
	}
	if _, ok := timestampTypes[base]; ok {
		return schema.TypeTimestamp, true
	}
	if _, ok := integerTypes[base]; ok {
		return schema.TypeInteger, true
	}
	return "", false
}

// Descriptor builds a schema descriptor requiring every column of info.
// durationColumn may be empty; when set it must be one of the columns.
func Descriptor(info *TableInfo, name, durationColumn string) (schema.Descriptor, error) {
	if name == "" {
		name = info.Name
	}
	d := schema.Descriptor{
		Name:           name,
		Description:    "derived from table " + info.Name,
		Types:          map[string]schema.Type{},
		DurationColumn: durationColumn,
	}
	for _, col := range info.Columns {
		d.Required = append(d.Required, col.Name)
		if typ, ok := TypeFor(col.Type); ok {
			d.Types[col.Name] = typ
		}
	}
	if err := d.Validate(); err != nil {
		return schema.Descriptor{}, err
	}
	return d, nil
}

// Load opens the backend, reads table and converts it to a descriptor.
func Load(ctx context.Context, cfg Config, table, name, durationColumn string) (schema.Descriptor, error) {
	if table == "" {
		return schema.Descriptor{}, fmt.Errorf("%s: table is required", cfg.Kind)
	}
	insp, err := Open(ctx, cfg)
	if err != nil {
		return schema.Descriptor{}, err
	}
	defer insp.Close()

	info, err := insp.FetchTable(ctx, table)
	if err != nil {
		return schema.Descriptor{}, fmt.Errorf("%s: fetch %s: %w", cfg.Kind, table, err)
	}
	return Descriptor(info, name, durationColumn)
}
