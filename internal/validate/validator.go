// Package validate implements the upload checks: required column presence and
// expected column types, and the Issue/Report model the checks report through.
package validate

type Issue struct {
	Kind     string
	Column   string
	Severity string
	Message  string
	Actual   string
	Expected string
	Detail   string
}

func (i Issue) String() string {
	s := i.Severity + " " + i.Kind
	if i.Column != "" {
		s += " [" + i.Column + "]"
	}
	if i.Message != "" {
		s += ": " + i.Message
	}
	if i.Detail != "" {
		s += ": " + i.Detail
	}
	return s
}

type Report struct {
	Issues []Issue
}

// Add records an issue of the given kind with its default severity and message.
func (r *Report) Add(kind, column, actual, expected, detail string) {
	r.Issues = append(r.Issues, Issue{
		Kind:     kind,
		Column:   column,
		Severity: SeverityForIssue(kind),
		Message:  MessageForIssue(kind, column, actual, expected),
		Actual:   actual,
		Expected: expected,
		Detail:   detail,
	})
}

// Blocking reports whether any issue has BLOCK severity.
func (r *Report) Blocking() bool {
	for _, iss := range r.Issues {
		if iss.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// BySeverity returns the issues with the given severity, in report order.
func (r *Report) BySeverity(severity string) []Issue {
	var out []Issue
	for _, iss := range r.Issues {
		if iss.Severity == severity {
			out = append(out, iss)
		}
	}
	return out
}

// ColumnResult is the outcome of the required-column check.
type ColumnResult struct {
	Missing []string
}

func (r ColumnResult) Valid() bool {
	return len(r.Missing) == 0
}

// ValidateColumns returns the required columns absent from present, in the
// order they appear in required. Duplicates in required are reported once.
func ValidateColumns(present, required []string) ColumnResult {
	have := make(map[string]struct{}, len(present))
	for _, col := range present {
		have[col] = struct{}{}
	}

	var res ColumnResult
	reported := map[string]struct{}{}
	for _, col := range required {
		if _, ok := have[col]; ok {
			continue
		}
		if _, dup := reported[col]; dup {
			continue
		}
		reported[col] = struct{}{}
		res.Missing = append(res.Missing, col)
	}
	return res
}

// AddTo records one missing_column issue per missing column.
func (r ColumnResult) AddTo(rep *Report) {
	for _, col := range r.Missing {
		rep.Add(KindMissingColumn, col, "", "", "")
	}
}
