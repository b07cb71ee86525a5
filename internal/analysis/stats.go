package analysis

import (
	"math"
	"sort"
)

// Summary holds the aggregate conversion-latency statistics for one set of
// records. Every field resolves to 0 for an empty population; an empty input
// is not an error.
type Summary struct {
	TotalEntities     int         `json:"total_entities"`
	ConvertedEntities int         `json:"converted_entities"`
	ConversionRate    float64     `json:"conversion_rate"`
	MeanDays          float64     `json:"mean_days"`
	MedianDays        int         `json:"median_days"`
	StdDevDays        float64     `json:"std_dev_days"`
	Percentiles       Percentiles `json:"percentiles"`
}

// Percentiles are nearest-rank latency percentiles in whole days.
type Percentiles struct {
	P25 int `json:"p25"`
	P75 int `json:"p75"`
	P90 int `json:"p90"`
	P95 int `json:"p95"`
}

// Summarize computes count, rate, mean, median, population standard deviation
// and percentiles over the converted subset of records.
func Summarize(records []ConversionRecord) Summary {
	s := Summary{TotalEntities: len(records)}

	days := make([]int, 0, len(records))
	for _, r := range records {
		if r.DaysToConversion != nil {
			days = append(days, *r.DaysToConversion)
		}
	}
	sort.Ints(days)

	s.ConvertedEntities = len(days)
	if s.TotalEntities > 0 {
		s.ConversionRate = float64(s.ConvertedEntities) / float64(s.TotalEntities)
	}
	if len(days) == 0 {
		return s
	}

	sum := 0
	for _, d := range days {
		sum += d
	}
	mean := float64(sum) / float64(len(days))
	s.MeanDays = mean

	variance := 0.0
	for _, d := range days {
		diff := float64(d) - mean
		variance += diff * diff
	}
	s.StdDevDays = math.Sqrt(variance / float64(len(days)))

	// The median is deliberately the same nearest-rank estimator as the
	// other percentiles, not a separate even/odd-average rule.
	s.MedianDays = nearestRank(days, 0.5)
	s.Percentiles = Percentiles{
		P25: nearestRank(days, 0.25),
		P75: nearestRank(days, 0.75),
		P90: nearestRank(days, 0.90),
		P95: nearestRank(days, 0.95),
	}
	return s
}

// nearestRank indexes the sorted sample at floor(n*p), clamped to the last
// element. Downstream reports depend on this exact indexing; do not swap in
// an interpolating estimator.
func nearestRank(sorted []int, p float64) int {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
