package models

// EventIngestRequest is the POST /events payload.
// event_id is optional; best practice is to pass Idempotency-Key header for retries.
// entity_id identifies the subject the event belongs to (subscriber, profile, ...)
// and keys all downstream latency analysis.
type EventIngestRequest struct {
	EventID    string                 `json:"event_id,omitempty"`
	EventName  string                 `json:"event_name"`
	EntityID   string                 `json:"entity_id"`
	Timestamp  string                 `json:"timestamp"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// EventIngestResponse is returned by POST /events.
// Duplicate indicates idempotent success (the event already existed).
type EventIngestResponse struct {
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
}
