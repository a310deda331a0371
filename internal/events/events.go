package events

import "time"

const (
	TypeLoaded     = "cache.loaded"
	TypeLoadFailed = "cache.load_failed"
)

// CacheEvent is pushed to websocket clients when a category load finishes.
type CacheEvent struct {
	Type     string    `json:"type"`
	Category string    `json:"category"`
	Count    int       `json:"count,omitempty"`
	Error    string    `json:"error,omitempty"`
	At       time.Time `json:"at"`
}

func NewLoaded(category string, count int) CacheEvent {
	return CacheEvent{
		Type:     TypeLoaded,
		Category: category,
		Count:    count,
		At:       time.Now().UTC(),
	}
}

func NewLoadFailed(category string, err error) CacheEvent {
	e := CacheEvent{
		Type:     TypeLoadFailed,
		Category: category,
		At:       time.Now().UTC(),
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}
