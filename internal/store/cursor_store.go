package store

import (
	"context"
	"fmt"
	"strconv"
)

// CursorStore defines the interface for storing and retrieving relay cursors
//
//go:generate mockgen -source=cursor_store.go -destination=../mocks/cursor_store.go -package=mocks -mock_names=CursorStore=MockCursorStore
type CursorStore interface {
	// GetRelayCursor returns the last journal ID delivered by the named relay, or 0
	GetRelayCursor(ctx context.Context, relay string) (uint64, error)
	// SetRelayCursor stores the last journal ID delivered by the named relay
	SetRelayCursor(ctx context.Context, relay string, eventID uint64) error
}

type cursorStore struct {
	kv KeyValueStore
}

// NewCursorStore creates a cursor store on top of a key-value store
func NewCursorStore(kv KeyValueStore) CursorStore {
	return &cursorStore{kv: kv}
}

func relayCursorKey(relay string) string {
	return fmt.Sprintf("relay_cursor:%s", relay)
}

// GetRelayCursor returns the last journal ID delivered by the named relay, or 0
func (s *cursorStore) GetRelayCursor(ctx context.Context, relay string) (uint64, error) {
	value, err := s.kv.GetKeyValue(ctx, relayCursorKey(relay))
	if err != nil {
		return 0, fmt.Errorf("failed to get relay cursor: %w", err)
	}
	if value == "" {
		return 0, nil
	}

	eventID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse relay cursor: %w", err)
	}

	return eventID, nil
}

// SetRelayCursor stores the last journal ID delivered by the named relay
func (s *cursorStore) SetRelayCursor(ctx context.Context, relay string, eventID uint64) error {
	err := s.kv.SetKeyValue(ctx, relayCursorKey(relay), strconv.FormatUint(eventID, 10))
	if err != nil {
		return fmt.Errorf("failed to set relay cursor: %w", err)
	}
	return nil
}
