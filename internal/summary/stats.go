// Package summary computes the descriptive statistics and duration buckets
// shown for an accepted upload.
package summary

import (
	"math"
	"sort"
)

// controlSigma is the number of standard deviations between the mean and each
// control limit.
const controlSigma = 3

// Stats holds the descriptive statistics of one numeric column.
type Stats struct {
	Count             int     `json:"count"`
	Mean              float64 `json:"mean"`
	Std               float64 `json:"std"`
	Min               float64 `json:"min"`
	P25               float64 `json:"p25"`
	P50               float64 `json:"p50"`
	P75               float64 `json:"p75"`
	Max               float64 `json:"max"`
	UpperControlLimit float64 `json:"upperControlLimit"`
	LowerControlLimit float64 `json:"lowerControlLimit"`
}

// Describe computes Stats for x. An empty slice yields the zero Stats.
func Describe(x []float64) Stats {
	if len(x) == 0 {
		return Stats{}
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	mean := Mean(x)
	std := SampleStd(x)
	upper, lower := ControlLimits(mean, std)
	return Stats{
		Count:             len(x),
		Mean:              mean,
		Std:               std,
		Min:               sorted[0],
		P25:               percentileSorted(sorted, 25),
		P50:               percentileSorted(sorted, 50),
		P75:               percentileSorted(sorted, 75),
		Max:               sorted[len(sorted)-1],
		UpperControlLimit: upper,
		LowerControlLimit: lower,
	}
}

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(n)
}

// SampleStd is the standard deviation with an n-1 denominator. It is 0 for
// fewer than two values.
func SampleStd(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}
	mean := Mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// ControlLimits returns mean ± 3·std. The lower limit is not clamped.
func ControlLimits(mean, std float64) (upper, lower float64) {
	return mean + controlSigma*std, mean - controlSigma*std
}

// Percentile returns the p-th percentile (0 <= p <= 100) of x using linear
// interpolation between closest ranks.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return 0
	}
	cp := make([]float64, len(x))
	copy(cp, x)
	sort.Float64s(cp)
	return percentileSorted(cp, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return sorted[lower]
	}
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
