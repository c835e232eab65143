package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderjulianmartinez/upload-watch/internal/schema"
	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
	"github.com/alexanderjulianmartinez/upload-watch/internal/validate"
)

var intake = schema.Descriptor{
	Name:           "clinic-intake",
	Required:       []string{"StartDate", "EndDate", "Duration__in_seconds_", "PatientID"},
	Types:          map[string]schema.Type{"StartDate": schema.TypeTimestamp, "EndDate": schema.TypeTimestamp},
	DurationColumn: "Duration__in_seconds_",
}

func loadCSV(t *testing.T, data string) *table.Table {
	t.Helper()
	tbl, err := table.ReadCSV(strings.NewReader(data), table.CSVOptions{})
	require.NoError(t, err)
	return tbl
}

func issueKinds(rep validate.Report) []string {
	kinds := make([]string, 0, len(rep.Issues))
	for _, iss := range rep.Issues {
		kinds = append(kinds, iss.Kind)
	}
	return kinds
}

func TestRun_MissingStartDateStopsAtColumns(t *testing.T) {
	wellness, err := schema.BuiltinCatalog().Lookup(schema.WellnessSurvey)
	require.NoError(t, err)

	var header []string
	for _, col := range wellness.Required {
		if col != "StartDate" {
			header = append(header, col)
		}
	}
	row := make([]string, len(header))
	for i := range row {
		row[i] = "x"
	}
	tbl := loadCSV(t, strings.Join(header, ",")+"\n"+strings.Join(row, ",")+"\n")

	res := Run(tbl, wellness, DefaultOptions())
	assert.False(t, res.Passed())
	assert.Equal(t, StageColumns, res.Stage)
	assert.Equal(t, []string{"StartDate"}, res.Columns.Missing)
	assert.Equal(t, []string{validate.KindMissingColumn}, issueKinds(res.Report))
	assert.Nil(t, res.Sample)
	assert.Nil(t, res.Summary)

	end, _ := tbl.Column("EndDate")
	assert.Equal(t, table.KindString, end.Kind(), "type stage did not run")
}

func TestRun_Pass(t *testing.T) {
	tbl := loadCSV(t, `StartDate,EndDate,Duration__in_seconds_,PatientID,Notes
2024-01-05 10:00:00,2024-01-05 10:01:00,60,p1,
2024-01-06T09:00:00+01:00,2024-01-06 08:30:00,1800,p2,late
2024-01-07,2024-01-07,30,p3,ok
`)

	res := Run(tbl, intake, DefaultOptions())
	require.True(t, res.Passed(), "issues: %v", res.Report.Issues)
	assert.Equal(t, StageSummary, res.Stage)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 2, res.RowsAfterFilter, "row with blank Notes is dropped")
	assert.Equal(t, 2, res.Sample.Len())

	require.NotNil(t, res.Summary)
	assert.Equal(t, 2, res.Summary.Stats.Count)
	assert.Equal(t, 915.0, res.Summary.Stats.Mean)
	assert.Empty(t, res.Report.Issues)

	start, _ := tbl.Column("StartDate")
	assert.Equal(t, time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC), start.Values[1])
}

func TestRun_NAPolicies(t *testing.T) {
	data := `StartDate,EndDate,Duration__in_seconds_,PatientID
2024-01-05,2024-01-05,10,
2024-01-06,2024-01-06,20,p2
2024-01-07,2024-01-07,,p3
`
	tests := []struct {
		policy      NAPolicy
		statCount   int
		sampleRows  int
		afterFilter int
	}{
		{NAPolicyNone, 2, 3, 3},
		{NAPolicyDropNA, 1, 1, 1},
		{NAPolicyDropNASample, 2, 1, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			opt := DefaultOptions()
			opt.NAPolicy = tt.policy
			res := Run(loadCSV(t, data), intake, opt)
			require.True(t, res.Passed())
			assert.Equal(t, tt.afterFilter, res.RowsAfterFilter)
			assert.Equal(t, tt.sampleRows, res.Sample.Len())
			require.NotNil(t, res.Summary)
			assert.Equal(t, tt.statCount, res.Summary.Stats.Count)
		})
	}
}

func TestRun_EmptyAfterFiltering(t *testing.T) {
	tbl := loadCSV(t, `StartDate,EndDate,Duration__in_seconds_,PatientID
2024-01-05,2024-01-05,10,
`)
	res := Run(tbl, intake, DefaultOptions())
	assert.True(t, res.Passed(), "a warning does not fail the upload")
	assert.Nil(t, res.Summary)
	assert.Equal(t, 0, res.RowsAfterFilter)
	require.Len(t, res.Report.Issues, 1)
	assert.Equal(t, validate.KindEmptyAfterFiltering, res.Report.Issues[0].Kind)
	assert.Equal(t, validate.SeverityWarn, res.Report.Issues[0].Severity)
}

func TestRun_TypeFailureStopsBeforeSummary(t *testing.T) {
	data := `StartDate,EndDate,Duration__in_seconds_,PatientID
soon,later,10,p1
`
	res := Run(loadCSV(t, data), intake, DefaultOptions())
	assert.False(t, res.Passed())
	assert.Equal(t, StageTypes, res.Stage)
	assert.Equal(t, []string{validate.KindTypeParseFailure}, issueKinds(res.Report))
	assert.Nil(t, res.Summary)

	opt := DefaultOptions()
	opt.FailFast = false
	res = Run(loadCSV(t, data), intake, opt)
	assert.Equal(t, []string{validate.KindTypeParseFailure, validate.KindTypeParseFailure}, issueKinds(res.Report))
}

func TestRun_NonNumericDuration(t *testing.T) {
	tbl := loadCSV(t, `StartDate,EndDate,Duration__in_seconds_,PatientID
2024-01-05,2024-01-05,ten,p1
`)
	res := Run(tbl, intake, DefaultOptions())
	assert.False(t, res.Passed())
	require.Len(t, res.Report.Issues, 1)
	iss := res.Report.Issues[0]
	assert.Equal(t, validate.KindTypeMismatch, iss.Kind)
	assert.Equal(t, "Duration__in_seconds_", iss.Column)
	assert.Equal(t, "type mismatch: string (expected numeric)", iss.Message)
}

func TestRun_UnclassifiedAndSkipped(t *testing.T) {
	tbl := loadCSV(t, `StartDate,EndDate,Duration__in_seconds_,PatientID
2024-01-05,2024-01-05,-4,p1
2024-01-05,2024-01-05,40,p2
`)
	res := Run(tbl, intake, DefaultOptions())
	assert.True(t, res.Passed())
	require.Len(t, res.Report.Issues, 1)
	assert.Equal(t, validate.KindUnclassifiedDuration, res.Report.Issues[0].Kind)
	assert.Equal(t, "1", res.Report.Issues[0].Actual)

	noDuration := intake
	noDuration.DurationColumn = ""
	res = Run(loadCSV(t, "StartDate,EndDate,Duration__in_seconds_,PatientID\n2024-01-05,2024-01-05,1,p1\n"), noDuration, DefaultOptions())
	assert.Equal(t, []string{validate.KindSummarySkipped}, issueKinds(res.Report))
	assert.Equal(t, 1, res.Sample.Len())
}

func TestRun_DurationWithoutValues(t *testing.T) {
	data := `StartDate,EndDate,Duration__in_seconds_,PatientID
2024-01-05,2024-01-05,,p1
2024-01-06,2024-01-06,NA,p2
`
	for _, policy := range []NAPolicy{NAPolicyNone, NAPolicyDropNASample} {
		t.Run(string(policy), func(t *testing.T) {
			opt := DefaultOptions()
			opt.NAPolicy = policy
			res := Run(loadCSV(t, data), intake, opt)

			assert.True(t, res.Passed())
			assert.Equal(t, StageSummary, res.Stage)
			assert.Nil(t, res.Summary)
			require.Len(t, res.Report.Issues, 1)
			iss := res.Report.Issues[0]
			assert.Equal(t, validate.KindEmptyDuration, iss.Kind)
			assert.Equal(t, validate.SeverityWarn, iss.Severity)
			assert.Equal(t, "Duration__in_seconds_", iss.Column)
		})
	}
}

func TestRun_InfinityDurationIsNotNumeric(t *testing.T) {
	res := Run(loadCSV(t, "StartDate,EndDate,Duration__in_seconds_,PatientID\n2024-01-05,2024-01-05,inf,p1\n"), intake, DefaultOptions())
	assert.False(t, res.Passed())
	assert.Nil(t, res.Summary)
	assert.Equal(t, []string{validate.KindTypeMismatch}, issueKinds(res.Report))
}

func TestParseNAPolicy(t *testing.T) {
	p, err := ParseNAPolicy("")
	require.NoError(t, err)
	assert.Equal(t, NAPolicyDropNA, p)

	p, err = ParseNAPolicy("drop-na-sample")
	require.NoError(t, err)
	assert.Equal(t, NAPolicyDropNASample, p)

	_, err = ParseNAPolicy("drop-everything")
	assert.Error(t, err)
}
