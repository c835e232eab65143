package validate

import "fmt"

// Centralized severity and message helpers for upload issues.
// Rules:
// - BLOCK when the upload cannot be accepted
// - WARN when the upload is accepted but part of the report is degraded
// - INFO for notes

const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityBlock = "BLOCK"
)

// Issue kinds.
const (
	KindMissingColumn        = "missing_column"
	KindTypeParseFailure     = "type_parse_failure"
	KindTypeMismatch         = "type_mismatch"
	KindEmptyAfterFiltering  = "empty_after_filtering"
	KindUnclassifiedDuration = "unclassified_duration"
	KindEmptyDuration        = "empty_duration"
	KindSummarySkipped       = "summary_skipped"
)

func SeverityForIssue(kind string) string {
	switch kind {
	case KindMissingColumn, KindTypeParseFailure, KindTypeMismatch:
		return SeverityBlock
	case KindEmptyAfterFiltering, KindUnclassifiedDuration, KindEmptyDuration:
		return SeverityWarn
	default:
		return SeverityInfo
	}
}

// MessageForIssue returns a concise message for the given issue kind.
func MessageForIssue(kind, column, actual, expected string) string {
	switch kind {
	case KindMissingColumn:
		return "required column missing"
	case KindTypeParseFailure:
		return fmt.Sprintf("cannot be parsed as %s", expected)
	case KindTypeMismatch:
		return fmt.Sprintf("type mismatch: %s (expected %s)", actual, expected)
	case KindEmptyAfterFiltering:
		return "no valid records found after filtering out rows with missing values"
	case KindUnclassifiedDuration:
		return fmt.Sprintf("%s negative duration value(s) fall outside every bucket", actual)
	case KindEmptyDuration:
		return "duration column has no values; summary skipped"
	case KindSummarySkipped:
		return "schema declares no duration column; summary skipped"
	default:
		return ""
	}
}
