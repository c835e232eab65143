package validate

import (
	"github.com/alexanderjulianmartinez/upload-watch/internal/schema"
	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
)

// Mode selects how CheckTypes reacts to a timestamp parse failure.
type Mode int

const (
	// FailFast stops the type check at the first parse failure.
	FailFast Mode = iota
	// CollectAll keeps checking the remaining columns.
	CollectAll
)

// TypeFailure describes one offending column. Err is set for parse failures;
// otherwise Actual and Expected describe a mismatch.
type TypeFailure struct {
	Column   string
	Expected schema.Type
	Actual   table.Kind
	Err      error
}

func (f TypeFailure) Kind() string {
	if f.Err != nil {
		return KindTypeParseFailure
	}
	return KindTypeMismatch
}

// Message returns the parser diagnostic or an "actual != expected" line.
func (f TypeFailure) Message() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return string(f.Actual) + " != " + string(f.Expected)
}

// TypeResult is the outcome of CheckTypes.
type TypeResult struct {
	Failures []TypeFailure
	// Aborted is set when FailFast stopped the check early.
	Aborted bool
}

func (r TypeResult) Valid() bool {
	return len(r.Failures) == 0
}

// AddTo records one issue per failure.
func (r TypeResult) AddTo(rep *Report) {
	for _, f := range r.Failures {
		rep.Add(f.Kind(), f.Column, string(f.Actual), string(f.Expected), f.Message())
	}
}

// CheckTypes coerces and checks the expected columns of t. Only columns present
// in t are examined. Timestamp columns that parse are replaced in place.
func CheckTypes(t *table.Table, expected []schema.Expectation, mode Mode) TypeResult {
	var res TypeResult
	for _, exp := range expected {
		col, ok := t.Column(exp.Column)
		if !ok {
			continue
		}
		switch exp.Type {
		case schema.TypeTimestamp:
			if err := CoerceTimestamps(col); err != nil {
				res.Failures = append(res.Failures, TypeFailure{
					Column:   exp.Column,
					Expected: exp.Type,
					Actual:   col.Kind(),
					Err:      err,
				})
				if mode == FailFast {
					res.Aborted = true
					return res
				}
			}
		case schema.TypeInteger:
			if kind := col.Kind(); kind != table.KindInteger {
				res.Failures = append(res.Failures, TypeFailure{Column: exp.Column, Expected: exp.Type, Actual: kind})
			}
		}
	}
	return res
}
