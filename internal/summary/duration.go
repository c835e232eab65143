package summary

import (
	"fmt"
	"math"
)

// Unclassified labels values that fall outside every bucket.
const Unclassified = "unclassified"

// Bucket is a half-open duration range [Lower, Upper) in seconds.
type Bucket struct {
	Label string
	Lower float64
	Upper float64
}

// Buckets are the duration bins in display order.
var Buckets = []Bucket{
	{"<1 min", 0, 60},
	{"1-2 mins", 60, 120},
	{"2-5 mins", 120, 300},
	{"5-10 mins", 300, 600},
	{"10-20 mins", 600, 1200},
	{"20-30 mins", 1200, 1800},
	{"30-60 mins", 1800, 3600},
	{"1-2 hrs", 3600, 7200},
	{"2-3 hrs", 7200, 10800},
	{"3+ hrs", 10800, math.Inf(1)},
}

// Categorize returns the label of the bucket holding seconds, or Unclassified.
func Categorize(seconds float64) string {
	for _, b := range Buckets {
		if seconds >= b.Lower && seconds < b.Upper {
			return b.Label
		}
	}
	return Unclassified
}

type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Frequencies counts values per bucket. Every bucket is listed in bin order;
// an Unclassified entry is appended only when some value fell outside.
func Frequencies(values []float64) []BucketCount {
	counts := make(map[string]int, len(Buckets)+1)
	for _, v := range values {
		counts[Categorize(v)]++
	}
	out := make([]BucketCount, 0, len(Buckets)+1)
	for _, b := range Buckets {
		out = append(out, BucketCount{Label: b.Label, Count: counts[b.Label]})
	}
	if n := counts[Unclassified]; n > 0 {
		out = append(out, BucketCount{Label: Unclassified, Count: n})
	}
	return out
}

// FormatDuration renders seconds as "{H}h {M}m {S}s", flooring each part.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "n/a"
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	total := int64(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%s%dh %dm %ds", sign, h, m, s)
}
