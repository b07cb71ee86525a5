// Package analysis implements the conversion-latency engine: a pure,
// single-pass transformation from two unordered entity event streams into
// aggregate statistics, a per-cohort breakdown and a latency distribution.
// The package performs no I/O and holds no state between calls; fetching,
// persisting and scheduling belong to the callers.
package analysis

// Result is the full output of one analysis run. It is fully serializable
// and holds no references back to the input events.
type Result struct {
	Statistics   Summary      `json:"statistics"`
	Cohorts      []Cohort     `json:"cohorts"`
	Distribution Distribution `json:"distribution"`
}

// Analyze turns two unordered event streams into the combined latency
// report. The start stream defines the measured population; conversion-only
// entities are outside it. Identical inputs, in any order, always produce an
// identical Result.
func Analyze(startEvents, conversionEvents []RawEvent, g Granularity) (Result, error) {
	if _, err := ParseGranularity(string(g)); err != nil {
		return Result{}, err
	}

	starts := FirstOccurrences(startEvents)
	conversions := FirstOccurrences(conversionEvents)
	records := Match(starts, conversions)

	return Result{
		Statistics:   Summarize(records),
		Cohorts:      AggregateCohorts(records, g),
		Distribution: BucketLatencies(records),
	}, nil
}
