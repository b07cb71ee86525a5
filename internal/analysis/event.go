package analysis

import (
	"strconv"
	"strings"
	"time"
)

// RawEvent is one externally supplied entity event. Events arrive unordered,
// possibly duplicated, possibly malformed; validation happens in the reducer.
type RawEvent struct {
	EntityID   string   `json:"entity_id"`
	OccurredAt FlexTime `json:"occurred_at"`
}

// FlexTime wraps time.Time and accepts either an RFC3339 string or a
// unix-seconds number when decoding JSON. A value that cannot be parsed
// decodes to the zero value instead of failing the enclosing document,
// so one bad record never poisons a whole batch.
type FlexTime struct {
	time.Time
}

// At builds a FlexTime from an in-process timestamp, normalized to UTC.
func At(t time.Time) FlexTime {
	return FlexTime{t.UTC()}
}

// Valid reports whether the timestamp parsed to a usable instant.
func (ft FlexTime) Valid() bool {
	return !ft.IsZero()
}

// UnmarshalJSON accepts "2024-01-02T15:04:05Z" style strings or unix-seconds
// numbers. Anything else leaves the zero value in place.
func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		raw, err := strconv.Unquote(s)
		if err != nil {
			return nil
		}
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			ft.Time = t.UTC()
		}
		return nil
	}

	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		ft.Time = time.Unix(int64(secs), 0).UTC()
	}
	return nil
}

// MarshalJSON emits RFC3339 UTC.
func (ft FlexTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(ft.UTC().Format(time.RFC3339))), nil
}
