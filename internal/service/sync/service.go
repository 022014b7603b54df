// Package sync implements multi-device reconciliation of card state
// against the server of record. A device pulls the authoritative set,
// studies offline, and pushes its batch back; conflicts resolve by
// whole-record last-write-wins on UpdatedAt, so pushes are idempotent
// and safe to retry.
package sync

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
)

// Common service errors
var (
	// ErrCardNotOwned is returned when a pushed card belongs to a
	// different user than the authenticated one.
	ErrCardNotOwned = errors.New("card does not belong to the user")

	// ErrEmptyBatch is returned when a push contains no cards.
	ErrEmptyBatch = errors.New("sync batch contains no cards")
)

// CardRepository defines the persistence operations the sync service
// needs. It is satisfied by an adapter over store.CardStore.
type CardRepository interface {
	// GetByUserID retrieves a user's full card set.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// UpsertCards saves a batch with last-write-wins semantics.
	UpsertCards(ctx context.Context, cards []*domain.Flashcard) error

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *sql.Tx) CardRepository

	// DB returns the underlying database handle for transaction control.
	DB() *sql.DB
}

// SyncService reconciles card batches between devices and the server.
type SyncService interface {
	// Pull returns the authoritative card set for a user, the payload a
	// device uses to (re)seed its local cache.
	Pull(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// Push applies a device's batch to the authoritative set and returns
	// the merged result. Stale records are ignored per last-write-wins;
	// replaying the same batch produces no additional state change.
	Push(
		ctx context.Context,
		userID uuid.UUID,
		incoming []*domain.Flashcard,
	) ([]*domain.Flashcard, error)
}
