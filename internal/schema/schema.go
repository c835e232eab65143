// Package schema describes the upload variants a file can be validated against.
// A Descriptor names the required columns, the expected semantic type of some
// of them, and the column that carries the response duration.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownSchema = errors.New("unknown schema")

// Type is the expected semantic type of a column.
type Type string

const (
	TypeTimestamp Type = "timestamp"
	TypeInteger   Type = "integer"
)

func (t Type) valid() bool {
	return t == TypeTimestamp || t == TypeInteger
}

type Descriptor struct {
	Name           string          `yaml:"name" json:"name"`
	Description    string          `yaml:"description,omitempty" json:"description,omitempty"`
	Required       []string        `yaml:"required" json:"required"`
	Types          map[string]Type `yaml:"types,omitempty" json:"types,omitempty"`
	DurationColumn string          `yaml:"durationColumn,omitempty" json:"durationColumn,omitempty"`
}

// Expectation pairs a column with its expected type.
type Expectation struct {
	Column string
	Type   Type
}

// Expectations returns the type map ordered by each column's position in
// Required. Entries for columns that are not required are skipped.
func (d Descriptor) Expectations() []Expectation {
	var out []Expectation
	seen := make(map[string]struct{}, len(d.Required))
	for _, col := range d.Required {
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		if typ, ok := d.Types[col]; ok {
			out = append(out, Expectation{Column: col, Type: typ})
		}
	}
	return out
}

// Validate checks that the descriptor is internally consistent.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("schema name is required")
	}
	if len(d.Required) == 0 {
		return fmt.Errorf("schema %s: at least one required column is needed", d.Name)
	}
	required := make(map[string]struct{}, len(d.Required))
	for _, col := range d.Required {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("schema %s: required column names must not be blank", d.Name)
		}
		if _, dup := required[col]; dup {
			return fmt.Errorf("schema %s: column %s is listed twice", d.Name, col)
		}
		required[col] = struct{}{}
	}

	cols := make([]string, 0, len(d.Types))
	for col := range d.Types {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		if _, ok := required[col]; !ok {
			return fmt.Errorf("schema %s: type given for column %s which is not required", d.Name, col)
		}
		if typ := d.Types[col]; !typ.valid() {
			return fmt.Errorf("schema %s: column %s has unsupported type %q (want %s or %s)", d.Name, col, typ, TypeTimestamp, TypeInteger)
		}
	}

	if d.DurationColumn != "" {
		if _, ok := required[d.DurationColumn]; !ok {
			return fmt.Errorf("schema %s: duration column %s must be required", d.Name, d.DurationColumn)
		}
	}
	return nil
}

// Catalog is an ordered set of descriptors addressable by name.
type Catalog struct {
	byName map[string]Descriptor
	names  []string
}

// NewCatalog validates and indexes the descriptors. Later descriptors replace
// earlier ones with the same name.
func NewCatalog(ds ...Descriptor) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Descriptor, len(ds))}
	for _, d := range ds {
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) Add(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := c.byName[d.Name]; !ok {
		c.names = append(c.names, d.Name)
	}
	c.byName[d.Name] = d
	return nil
}

// Lookup returns the named descriptor.
func (c *Catalog) Lookup(name string) (Descriptor, error) {
	d, ok := c.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s (available: %s)", ErrUnknownSchema, name, strings.Join(c.names, ", "))
	}
	return d, nil
}

// Names returns descriptor names in insertion order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}
