// Package types holds the machine-readable result of one upload check.
package types

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

type CheckResult struct {
	File            string        `json:"file"`
	Schema          string        `json:"schema"`
	Stage           string        `json:"stage"`
	Rows            int           `json:"rows"`
	RowsAfterFilter int           `json:"rowsAfterFilter"`
	MissingColumns  []string      `json:"missingColumns"`
	TypeErrors      []TypeError   `json:"typeErrors"`
	Summary         *Summary      `json:"summary,omitempty"`
	Buckets         []BucketCount `json:"buckets,omitempty"`
	Sample          *Sample       `json:"sample,omitempty"`
	Issues          []Issue       `json:"issues"`
	Status          string        `json:"status"`
}

// TypeError is one column that failed the type check.
type TypeError struct {
	Column   string `json:"column"`
	Expected string `json:"expected"`
	Actual   string `json:"actual,omitempty"`
	Message  string `json:"message"`
}

// Summary is the duration summary with each time statistic also rendered as
// "{H}h {M}m {S}s".
type Summary struct {
	Column            string            `json:"column"`
	Count             int               `json:"count"`
	Mean              float64           `json:"mean"`
	Std               float64           `json:"std"`
	Min               float64           `json:"min"`
	P25               float64           `json:"p25"`
	P50               float64           `json:"p50"`
	P75               float64           `json:"p75"`
	Max               float64           `json:"max"`
	UpperControlLimit float64           `json:"upperControlLimit"`
	LowerControlLimit float64           `json:"lowerControlLimit"`
	Formatted         map[string]string `json:"formatted"`
}

type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Sample is the preview of the first rows. Timestamps are RFC 3339 strings
// and missing values are null.
type Sample struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type Issue struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Column   string `json:"column,omitempty"`
	Message  string `json:"message"`
	Detail   string `json:"detail,omitempty"`
}
