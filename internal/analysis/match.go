package analysis

import (
	"math"
	"time"
)

const secondsPerDay = 86400

// ConversionRecord pairs one start entity with its conversion outcome.
// DaysToConversion is set only when the entity converted on or after its
// start time; a recorded conversion that predates the start keeps the
// timestamp but stays non-converted so negative latencies never reach the
// statistics.
type ConversionRecord struct {
	EntityID         string
	StartTime        time.Time
	ConversionTime   *time.Time
	DaysToConversion *int
}

// Converted reports whether the record counts toward the converted subset.
func (r ConversionRecord) Converted() bool {
	return r.DaysToConversion != nil
}

// Match produces one ConversionRecord per start entity. The population of
// interest is defined by the start stream: entities appearing only in the
// conversion stream are ignored. Output order follows map iteration and is
// unspecified; callers requiring stable order must sort downstream.
func Match(starts, conversions map[string]time.Time) []ConversionRecord {
	records := make([]ConversionRecord, 0, len(starts))
	for entityID, startTime := range starts {
		rec := ConversionRecord{EntityID: entityID, StartTime: startTime}
		if convTime, ok := conversions[entityID]; ok {
			ct := convTime
			rec.ConversionTime = &ct
			if !convTime.Before(startTime) {
				days := latencyDays(startTime, convTime)
				rec.DaysToConversion = &days
			}
		}
		records = append(records, rec)
	}
	return records
}

// latencyDays converts the start→conversion gap to whole days, rounding
// half away from zero (a 12-hour gap counts as 1 day, not 0).
func latencyDays(start, conversion time.Time) int {
	return int(math.Round(conversion.Sub(start).Seconds() / secondsPerDay))
}
