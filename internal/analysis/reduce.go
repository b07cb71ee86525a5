package analysis

import "time"

// FirstOccurrences collapses a raw event list into the earliest timestamp
// seen per entity. Events missing an entity ID or carrying an unparseable
// timestamp are silently dropped; callers that need visibility into drops
// should compare input length against the size of the returned map.
func FirstOccurrences(events []RawEvent) map[string]time.Time {
	first := make(map[string]time.Time, len(events))
	for _, ev := range events {
		if ev.EntityID == "" || !ev.OccurredAt.Valid() {
			continue
		}
		ts := ev.OccurredAt.Time
		if prev, ok := first[ev.EntityID]; !ok || ts.Before(prev) {
			first[ev.EntityID] = ts
		}
	}
	return first
}
