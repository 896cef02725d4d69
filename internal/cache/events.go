package cache

// EventType identifies a change in the cache.
type EventType string

const (
	EventPut    EventType = "put"
	EventDelete EventType = "delete"
	EventExpire EventType = "expire"
	EventClear  EventType = "clear"
)

// Event describes a single change. Count is only set for EventClear and holds
// the number of entries removed.
type Event struct {
	Type  EventType `json:"type"`
	Key   string    `json:"key,omitempty"`
	Count int       `json:"count,omitempty"`
}
