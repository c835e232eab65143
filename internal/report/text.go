package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/alexanderjulianmartinez/upload-watch/internal/pipeline"
	"github.com/alexanderjulianmartinez/upload-watch/internal/summary"
	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
	"github.com/alexanderjulianmartinez/upload-watch/internal/validate"
)

const barWidth = 40

type TextOptions struct {
	Color bool
}

type palette struct {
	pass, fail, warn, info, bold func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		pass: mk(color.FgGreen, color.Bold),
		fail: mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow),
		info: mk(color.FgCyan),
		bold: mk(color.Bold),
	}
}

func (p palette) status(ok bool) string {
	if ok {
		return p.pass("PASS")
	}
	return p.fail("FAIL")
}

// WriteText renders res for a terminal: one status line per stage, then the
// preview sample, the duration summary and the bucket counts.
func WriteText(w io.Writer, file string, res *pipeline.Result, opt TextOptions) error {
	p := newPalette(opt.Color)

	fmt.Fprintf(w, "%s %s\n", p.bold("File:"), file)
	fmt.Fprintf(w, "%s %s\n", p.bold("Schema:"), res.Schema)
	fmt.Fprintf(w, "%s %d\n\n", p.bold("Rows:"), res.Rows)

	fmt.Fprintf(w, "Required columns: %s\n", p.status(res.Columns.Valid()))
	for _, col := range res.Columns.Missing {
		fmt.Fprintf(w, "  missing: %s\n", col)
	}
	if res.Stage == pipeline.StageColumns {
		return writeFooter(w, p, res)
	}

	fmt.Fprintf(w, "Column types: %s\n", p.status(res.Types.Valid()))
	if !res.Types.Valid() {
		if err := writeTypeFailures(w, res.Types.Failures); err != nil {
			return err
		}
	}
	if res.Stage == pipeline.StageTypes {
		return writeFooter(w, p, res)
	}

	if res.Sample != nil && res.Sample.Len() > 0 {
		fmt.Fprintf(w, "\n%s (%d of %d rows after filtering)\n", p.bold("Sample"), res.Sample.Len(), res.RowsAfterFilter)
		if err := writeSample(w, res.Sample); err != nil {
			return err
		}
	}
	if res.Summary != nil {
		fmt.Fprintf(w, "\n%s %s\n", p.bold("Duration summary:"), res.Summary.Column)
		if err := writeStats(w, res.Summary.Stats); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s\n", p.bold("Duration buckets"))
		if err := writeBuckets(w, res.Summary.Buckets); err != nil {
			return err
		}
	}
	return writeFooter(w, p, res)
}

func writeFooter(w io.Writer, p palette, res *pipeline.Result) error {
	var notes []validate.Issue
	if res.Stage == pipeline.StageSummary {
		// Column and type failures were listed with their stage.
		notes = append(notes, res.Report.BySeverity(validate.SeverityBlock)...)
	}
	notes = append(notes, res.Report.BySeverity(validate.SeverityWarn)...)
	notes = append(notes, res.Report.BySeverity(validate.SeverityInfo)...)
	if len(notes) > 0 {
		fmt.Fprintln(w)
	}
	for _, iss := range notes {
		label := p.info(iss.Severity)
		switch iss.Severity {
		case validate.SeverityBlock:
			label = p.fail(iss.Severity)
		case validate.SeverityWarn:
			label = p.warn(iss.Severity)
		}
		msg := iss.Message
		if iss.Column != "" {
			msg = iss.Column + ": " + msg
		}
		fmt.Fprintf(w, "%s %s\n", label, msg)
	}
	_, err := fmt.Fprintf(w, "\nStatus: %s\n", p.status(res.Passed()))
	return err
}

func writeTypeFailures(w io.Writer, failures []validate.TypeFailure) error {
	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Column", "Expected", "Actual", "Detail"})
	var data [][]string
	for _, f := range failures {
		data = append(data, []string{f.Column, string(f.Expected), string(f.Actual), f.Message()})
	}
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	return tbl.Render()
}

func writeSample(w io.Writer, t *table.Table) error {
	tbl := tablewriter.NewWriter(w)
	tbl.Header(t.Columns())
	var data [][]string
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		data = append(data, cells)
	}
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	return tbl.Render()
}

func writeStats(w io.Writer, s summary.Stats) error {
	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Statistic", "Seconds", "Duration"})
	tbl.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	seconds := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	data := [][]string{{"count", strconv.Itoa(s.Count), ""}}
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"mean", s.Mean},
		{"std", s.Std},
		{"min", s.Min},
		{"25%", s.P25},
		{"50%", s.P50},
		{"75%", s.P75},
		{"max", s.Max},
		{"upper control limit", s.UpperControlLimit},
		{"lower control limit", s.LowerControlLimit},
	} {
		data = append(data, []string{row.name, seconds(row.value), summary.FormatDuration(row.value)})
	}
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	return tbl.Render()
}

func writeBuckets(w io.Writer, buckets []summary.BucketCount) error {
	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Bucket", "Count", ""})

	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}
	var data [][]string
	for _, b := range buckets {
		data = append(data, []string{b.Label, strconv.Itoa(b.Count), bar(b.Count, peak)})
	}
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	return tbl.Render()
}

// bar scales count against peak to at most barWidth '#' characters. Non-zero
// counts always get at least one.
func bar(count, peak int) string {
	if count <= 0 || peak <= 0 {
		return ""
	}
	n := count * barWidth / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func formatCell(v any) string {
	if table.IsMissing(v) {
		return ""
	}
	switch x := v.(type) {
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
