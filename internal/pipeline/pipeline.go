// Package pipeline runs the upload checks in order: required columns, then
// expected types, then the duration summary. Each stage gates the next.
package pipeline

import (
	"fmt"
	"strconv"

	"github.com/alexanderjulianmartinez/upload-watch/internal/schema"
	"github.com/alexanderjulianmartinez/upload-watch/internal/summary"
	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
	"github.com/alexanderjulianmartinez/upload-watch/internal/validate"
)

// NAPolicy controls which rows reach the summary and the preview sample.
type NAPolicy string

const (
	// NAPolicyNone keeps every row.
	NAPolicyNone NAPolicy = "none"
	// NAPolicyDropNA drops rows with any missing value before summarizing and sampling.
	NAPolicyDropNA NAPolicy = "drop-na"
	// NAPolicyDropNASample summarizes all rows but samples only complete ones.
	NAPolicyDropNASample NAPolicy = "drop-na-sample"
)

const DefaultSampleSize = 10

// ParseNAPolicy accepts the policy names used in flags and config files.
// An empty string selects NAPolicyDropNA.
func ParseNAPolicy(s string) (NAPolicy, error) {
	switch NAPolicy(s) {
	case "":
		return NAPolicyDropNA, nil
	case NAPolicyNone, NAPolicyDropNA, NAPolicyDropNASample:
		return NAPolicy(s), nil
	}
	return "", fmt.Errorf("unknown NA policy %q (want none, drop-na or drop-na-sample)", s)
}

type Options struct {
	FailFast   bool
	NAPolicy   NAPolicy
	SampleSize int
}

func DefaultOptions() Options {
	return Options{
		FailFast:   true,
		NAPolicy:   NAPolicyDropNA,
		SampleSize: DefaultSampleSize,
	}
}

// Stage is the furthest pipeline stage that ran.
type Stage string

const (
	StageColumns Stage = "columns"
	StageTypes   Stage = "types"
	StageSummary Stage = "summary"
)

// Result is everything a renderer needs to present one run.
type Result struct {
	Schema          string
	Rows            int
	RowsAfterFilter int
	Stage           Stage
	Columns         validate.ColumnResult
	Types           validate.TypeResult
	Sample          *table.Table
	Summary         *summary.Summary
	Report          validate.Report
}

// Passed reports whether the upload can be accepted.
func (r *Result) Passed() bool {
	return !r.Report.Blocking()
}

// Run validates t against d. t is modified in place by timestamp coercion.
func Run(t *table.Table, d schema.Descriptor, opt Options) *Result {
	if opt.NAPolicy == "" {
		opt.NAPolicy = NAPolicyDropNA
	}
	if opt.SampleSize <= 0 {
		opt.SampleSize = DefaultSampleSize
	}

	res := &Result{Schema: d.Name, Rows: t.Len(), Stage: StageColumns}

	res.Columns = validate.ValidateColumns(t.Columns(), d.Required)
	if !res.Columns.Valid() {
		res.Columns.AddTo(&res.Report)
		return res
	}

	res.Stage = StageTypes
	mode := validate.CollectAll
	if opt.FailFast {
		mode = validate.FailFast
	}
	res.Types = validate.CheckTypes(t, d.Expectations(), mode)
	if !res.Types.Valid() {
		res.Types.AddTo(&res.Report)
		return res
	}

	res.Stage = StageSummary
	summarized, sampled := t, t
	switch opt.NAPolicy {
	case NAPolicyDropNA:
		summarized = t.DropNA()
		sampled = summarized
	case NAPolicyDropNASample:
		sampled = t.DropNA()
	}
	res.RowsAfterFilter = summarized.Len()
	res.Sample = sampled.Head(opt.SampleSize)

	if summarized.Len() == 0 {
		res.Report.Add(validate.KindEmptyAfterFiltering, "", "", "", "")
		return res
	}
	if d.DurationColumn == "" {
		res.Report.Add(validate.KindSummarySkipped, "", "", "", "")
		return res
	}

	sum, err := summary.Summarize(summarized, d.DurationColumn)
	if err != nil {
		actual := string(table.KindEmpty)
		if col, ok := summarized.Column(d.DurationColumn); ok {
			actual = string(col.Kind())
		}
		res.Report.Add(validate.KindTypeMismatch, d.DurationColumn, actual, "numeric", err.Error())
		return res
	}
	if sum.Stats.Count == 0 {
		res.Report.Add(validate.KindEmptyDuration, d.DurationColumn, "", "", "")
		return res
	}
	res.Summary = sum
	if sum.Unclassified > 0 {
		res.Report.Add(validate.KindUnclassifiedDuration, d.DurationColumn, strconv.Itoa(sum.Unclassified), "", "")
	}
	return res
}
