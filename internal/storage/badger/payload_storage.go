package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/interfaces"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// PayloadStorage implements the PayloadCache interface for Badger.
type PayloadStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPayloadStorage creates a new PayloadStorage instance.
func NewPayloadStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PayloadCache {
	return &PayloadStorage{
		db:     db,
		logger: logger,
	}
}

func (s *PayloadStorage) Get(ctx context.Context, key string) (*models.CachedPayload, error) {
	var payload models.CachedPayload
	if err := s.db.Store().Get(key, &payload); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached payload: %w", err)
	}
	return &payload, nil
}

func (s *PayloadStorage) Put(ctx context.Context, payload *models.CachedPayload) error {
	if payload.Key == "" {
		return fmt.Errorf("payload key is required")
	}
	if err := s.db.Store().Upsert(payload.Key, payload); err != nil {
		return fmt.Errorf("failed to store payload: %w", err)
	}
	return nil
}

func (s *PayloadStorage) Close() error {
	return s.db.Close()
}
