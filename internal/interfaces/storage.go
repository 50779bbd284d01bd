package interfaces

import (
	"context"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// PayloadCache stores raw provider responses so repeated screenings of the
// same organization do not burn upstream request budget.
type PayloadCache interface {
	// Get returns the cached payload for key, or nil when absent.
	Get(ctx context.Context, key string) (*models.CachedPayload, error)

	// Put inserts or replaces the payload for its key.
	Put(ctx context.Context, payload *models.CachedPayload) error

	Close() error
}
