// Package report renders a pipeline result for people (text) and for
// machines (JSON).
package report

import (
	"time"

	"github.com/alexanderjulianmartinez/upload-watch/internal/pipeline"
	"github.com/alexanderjulianmartinez/upload-watch/internal/summary"
	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
	"github.com/alexanderjulianmartinez/upload-watch/internal/validate"
	"github.com/alexanderjulianmartinez/upload-watch/pkg/types"
)

// Build flattens res into the JSON result shape.
func Build(file string, res *pipeline.Result) types.CheckResult {
	out := types.CheckResult{
		File:            file,
		Schema:          res.Schema,
		Stage:           string(res.Stage),
		Rows:            res.Rows,
		RowsAfterFilter: res.RowsAfterFilter,
		MissingColumns:  append([]string{}, res.Columns.Missing...),
		TypeErrors:      []types.TypeError{},
		Issues:          []types.Issue{},
		Status:          types.StatusPass,
	}
	if !res.Passed() {
		out.Status = types.StatusFail
	}

	for _, iss := range res.Report.Issues {
		out.Issues = append(out.Issues, types.Issue{
			Kind:     iss.Kind,
			Severity: iss.Severity,
			Column:   iss.Column,
			Message:  iss.Message,
			Detail:   iss.Detail,
		})
		if iss.Kind == validate.KindTypeParseFailure || iss.Kind == validate.KindTypeMismatch {
			out.TypeErrors = append(out.TypeErrors, types.TypeError{
				Column:   iss.Column,
				Expected: iss.Expected,
				Actual:   iss.Actual,
				Message:  iss.Detail,
			})
		}
	}

	if s := res.Summary; s != nil {
		out.Summary = buildSummary(s)
		for _, b := range s.Buckets {
			out.Buckets = append(out.Buckets, types.BucketCount{Label: b.Label, Count: b.Count})
		}
	}
	if res.Sample != nil {
		out.Sample = buildSample(res.Sample)
	}
	return out
}

func buildSummary(s *summary.Summary) *types.Summary {
	st := s.Stats
	return &types.Summary{
		Column:            s.Column,
		Count:             st.Count,
		Mean:              st.Mean,
		Std:               st.Std,
		Min:               st.Min,
		P25:               st.P25,
		P50:               st.P50,
		P75:               st.P75,
		Max:               st.Max,
		UpperControlLimit: st.UpperControlLimit,
		LowerControlLimit: st.LowerControlLimit,
		Formatted: map[string]string{
			"mean":              summary.FormatDuration(st.Mean),
			"std":               summary.FormatDuration(st.Std),
			"min":               summary.FormatDuration(st.Min),
			"p25":               summary.FormatDuration(st.P25),
			"p50":               summary.FormatDuration(st.P50),
			"p75":               summary.FormatDuration(st.P75),
			"max":               summary.FormatDuration(st.Max),
			"upperControlLimit": summary.FormatDuration(st.UpperControlLimit),
			"lowerControlLimit": summary.FormatDuration(st.LowerControlLimit),
		},
	}
}

func buildSample(t *table.Table) *types.Sample {
	s := &types.Sample{Columns: t.Columns(), Rows: make([][]any, 0, t.Len())}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j, v := range row {
			switch x := v.(type) {
			case time.Time:
				row[j] = x.Format(time.RFC3339Nano)
			default:
				if table.IsMissing(v) {
					row[j] = nil
				}
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}
