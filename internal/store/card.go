package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
)

// CardStore defines the interface for flashcard persistence.
//
// The persisted representation is row-oriented: one record per card,
// uniquely keyed by card ID and scoped by user ID. A sync operation is a
// bulk upsert of a batch of such records plus a bulk read scoped to one
// user; conflict resolution is whole-record last-write-wins on UpdatedAt
// and implementations must enforce it so a stale replay can never clobber
// a newer record.
type CardStore interface {
	// UpsertCards saves a batch of cards with insert-or-replace semantics.
	// An existing row is only replaced when the incoming UpdatedAt is
	// strictly greater, which makes replaying the same batch idempotent.
	//
	// The batch should be run within a transaction for atomicity; use
	// WithTxCardStore together with store.RunInTransaction:
	//
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       return cardStore.WithTxCardStore(tx).UpsertCards(ctx, cards)
	//   })
	//
	// All cards must be valid according to domain validation rules.
	UpsertCards(ctx context.Context, cards []*domain.Flashcard) error

	// GetByUserID retrieves a user's full card set, ordered by creation
	// time. This is the bulk read backing a device's pull.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// WithTxCardStore returns a new CardStore instance that uses the
	// provided transaction. The transaction is created and managed by the
	// caller (typically a service).
	WithTxCardStore(tx *sql.Tx) CardStore
}
