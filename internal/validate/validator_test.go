package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderjulianmartinez/upload-watch/internal/schema"
	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
)

func TestValidateColumns_Superset(t *testing.T) {
	required := []string{"StartDate", "EndDate", "Status"}
	present := []string{"Extra", "Status", "EndDate", "StartDate", "Other"}

	res := ValidateColumns(present, required)
	assert.True(t, res.Valid())
	assert.Empty(t, res.Missing)
}

func TestValidateColumns_Missing(t *testing.T) {
	required := []string{"StartDate", "EndDate", "Status", "Progress", "EndDate"}
	present := []string{"Status", "Unrelated"}

	res := ValidateColumns(present, required)
	require.False(t, res.Valid())
	assert.Equal(t, []string{"StartDate", "EndDate", "Progress"}, res.Missing)
	for _, col := range present {
		assert.NotContains(t, res.Missing, col)
	}
}

func TestValidateColumns_OrderIndependent(t *testing.T) {
	required := []string{"a", "b", "c", "d"}
	first := ValidateColumns([]string{"c", "a"}, required)
	second := ValidateColumns([]string{"a", "c"}, required)
	assert.Equal(t, first, second)
	assert.Equal(t, first, ValidateColumns([]string{"a", "c"}, required))
}

func TestColumnResult_AddTo(t *testing.T) {
	var rep Report
	ValidateColumns(nil, []string{"StartDate"}).AddTo(&rep)

	require.Len(t, rep.Issues, 1)
	iss := rep.Issues[0]
	assert.Equal(t, KindMissingColumn, iss.Kind)
	assert.Equal(t, SeverityBlock, iss.Severity)
	assert.Equal(t, "StartDate", iss.Column)
	assert.True(t, rep.Blocking())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-05 10:00:00", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:00:00Z", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:00:00+02:00", time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)},
		{"2024-01-05 10:00:00-05:00", time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC)},
		{"2024-01-05 10:00:00.250", time.Date(2024, 1, 5, 10, 0, 0, 250_000_000, time.UTC)},
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"1/5/2024 3:04 PM", time.Date(2024, 1, 5, 15, 4, 0, 0, time.UTC)},
		{" 1/5/2024 13:30 ", time.Date(2024, 1, 5, 13, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func timestampTable(t *testing.T, cols map[string][]any, order ...string) *table.Table {
	t.Helper()
	tbl, err := table.New(order)
	require.NoError(t, err)
	n := len(cols[order[0]])
	for i := 0; i < n; i++ {
		row := make([]any, len(order))
		for j, name := range order {
			row[j] = cols[name][i]
		}
		require.NoError(t, tbl.AppendRow(row))
	}
	return tbl
}

func TestCoerceTimestamps_Idempotent(t *testing.T) {
	tbl := timestampTable(t, map[string][]any{
		"StartDate": {"2024-01-05T10:00:00+02:00", nil, "2024-02-01"},
	}, "StartDate")
	col, _ := tbl.Column("StartDate")

	require.NoError(t, CoerceTimestamps(col))
	first := append([]any(nil), col.Values...)
	assert.Equal(t, table.KindTimestamp, col.Kind())
	assert.Nil(t, first[1])

	require.NoError(t, CoerceTimestamps(col))
	assert.Equal(t, first, col.Values)
}

func TestCoerceTimestamps_FailureLeavesColumnUntouched(t *testing.T) {
	tbl := timestampTable(t, map[string][]any{
		"StartDate": {"2024-01-05", "not a date"},
	}, "StartDate")
	col, _ := tbl.Column("StartDate")

	err := CoerceTimestamps(col)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Row)
	assert.Equal(t, "not a date", pe.Value)
	assert.Equal(t, []any{"2024-01-05", "not a date"}, col.Values)
}

func TestCheckTypes(t *testing.T) {
	expected := []schema.Expectation{
		{Column: "StartDate", Type: schema.TypeTimestamp},
		{Column: "EndDate", Type: schema.TypeTimestamp},
		{Column: "DoseNumber", Type: schema.TypeInteger},
		{Column: "NotPresent", Type: schema.TypeTimestamp},
	}
	build := func() *table.Table {
		return timestampTable(t, map[string][]any{
			"StartDate":  {"bogus", "2024-01-05"},
			"EndDate":    {"2024-01-05 10:00:00", "2024-01-06 10:00:00"},
			"DoseNumber": {int64(1), 2.5},
		}, "StartDate", "EndDate", "DoseNumber")
	}

	t.Run("fail fast", func(t *testing.T) {
		tbl := build()
		res := CheckTypes(tbl, expected, FailFast)
		require.False(t, res.Valid())
		assert.True(t, res.Aborted)
		require.Len(t, res.Failures, 1)
		f := res.Failures[0]
		assert.Equal(t, "StartDate", f.Column)
		assert.Equal(t, KindTypeParseFailure, f.Kind())
		assert.Contains(t, f.Message(), `"bogus"`)

		end, _ := tbl.Column("EndDate")
		assert.Equal(t, table.KindString, end.Kind(), "later columns are not coerced")
	})

	t.Run("collect all", func(t *testing.T) {
		tbl := build()
		res := CheckTypes(tbl, expected, CollectAll)
		require.False(t, res.Valid())
		assert.False(t, res.Aborted)
		require.Len(t, res.Failures, 2)

		assert.Equal(t, "StartDate", res.Failures[0].Column)
		assert.Equal(t, "DoseNumber", res.Failures[1].Column)
		assert.Equal(t, KindTypeMismatch, res.Failures[1].Kind())
		assert.Equal(t, table.KindFloat, res.Failures[1].Actual)
		assert.Equal(t, schema.TypeInteger, res.Failures[1].Expected)

		end, _ := tbl.Column("EndDate")
		assert.Equal(t, table.KindTimestamp, end.Kind())

		var rep Report
		res.AddTo(&rep)
		require.Len(t, rep.Issues, 2)
		assert.Equal(t, "type mismatch: float (expected integer)", rep.Issues[1].Message)
		assert.Equal(t, "float != integer", rep.Issues[1].Detail)
	})
}

func TestCheckTypes_Valid(t *testing.T) {
	tbl := timestampTable(t, map[string][]any{
		"StartDate":  {"2024-01-05 10:00:00", nil},
		"DoseNumber": {int64(1), nil},
	}, "StartDate", "DoseNumber")

	res := CheckTypes(tbl, []schema.Expectation{
		{Column: "StartDate", Type: schema.TypeTimestamp},
		{Column: "DoseNumber", Type: schema.TypeInteger},
	}, FailFast)
	assert.True(t, res.Valid())

	col, _ := tbl.Column("StartDate")
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), col.Values[0])
}

func TestSeverityForIssue(t *testing.T) {
	assert.Equal(t, SeverityBlock, SeverityForIssue(KindTypeParseFailure))
	assert.Equal(t, SeverityWarn, SeverityForIssue(KindEmptyAfterFiltering))
	assert.Equal(t, SeverityWarn, SeverityForIssue(KindEmptyDuration))
	assert.Equal(t, SeverityInfo, SeverityForIssue(KindSummarySkipped))
	assert.Equal(t, SeverityInfo, SeverityForIssue("something_else"))
}
