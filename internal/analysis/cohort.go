package analysis

import (
	"fmt"
	"sort"
	"time"
)

// Granularity selects how start times are grouped into signup cohorts.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// DefaultGranularity applies when the caller does not specify one.
const DefaultGranularity = GranularityWeek

// ParseGranularity validates a caller-supplied granularity value. Unknown
// values are an error rather than a silent default because the value changes
// every cohort key in the result.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q (want day, week or month)", s)
}

// Cohort summarizes the entities whose start event falls in one signup
// period. Built once per analysis run and never mutated afterwards.
type Cohort struct {
	CohortKey         string       `json:"cohort_key"`
	PeriodStart       time.Time    `json:"period_start_date"`
	TotalEntities     int          `json:"total_entities"`
	ConvertedEntities int          `json:"converted_entities"`
	ConversionRate    float64      `json:"conversion_rate"`
	AvgDays           float64      `json:"avg_days"`
	MedianDays        int          `json:"median_days"`
	Distribution      Distribution `json:"day_range_distribution"`
}

// AggregateCohorts groups records by signup period and reuses Summarize and
// BucketLatencies within each group. A period with zero entities produces no
// cohort; gaps are not filled. The result is ordered ascending by period
// start.
func AggregateCohorts(records []ConversionRecord, g Granularity) []Cohort {
	groups := make(map[time.Time][]ConversionRecord)
	for _, r := range records {
		start := periodStart(r.StartTime, g)
		groups[start] = append(groups[start], r)
	}

	cohorts := make([]Cohort, 0, len(groups))
	for start, group := range groups {
		sum := Summarize(group)
		cohorts = append(cohorts, Cohort{
			CohortKey:         cohortKey(start, g),
			PeriodStart:       start,
			TotalEntities:     sum.TotalEntities,
			ConvertedEntities: sum.ConvertedEntities,
			ConversionRate:    sum.ConversionRate,
			AvgDays:           sum.MeanDays,
			MedianDays:        sum.MedianDays,
			Distribution:      BucketLatencies(group),
		})
	}

	sort.Slice(cohorts, func(i, j int) bool {
		return cohorts[i].PeriodStart.Before(cohorts[j].PeriodStart)
	})
	return cohorts
}

// periodStart floors a start time to the beginning of its cohort period, UTC.
func periodStart(t time.Time, g Granularity) time.Time {
	t = t.UTC()
	switch g {
	case GranularityDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case GranularityWeek:
		// Monday on or before t (ISO week start).
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	default: // GranularityMonth
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

func cohortKey(start time.Time, g Granularity) string {
	if g == GranularityMonth {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}
