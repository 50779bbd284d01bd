package models

import "time"

// CachedPayload is one raw provider response held in the payload cache.
// Only upstream payloads are cached; evaluation results are never stored.
type CachedPayload struct {
	Key       string    `badgerhold:"key"` // canonical EIN or search key
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}
