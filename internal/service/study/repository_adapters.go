package study

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/store"
)

// cardRepositoryAdapter adapts a store.CardStore to the CardRepository
// interface the study service depends on.
type cardRepositoryAdapter struct {
	cardStore store.CardStore
	db        *sql.DB
}

// NewCardRepositoryAdapter creates a CardRepository backed by the given
// card store and database handle.
func NewCardRepositoryAdapter(cardStore store.CardStore, db *sql.DB) CardRepository {
	return &cardRepositoryAdapter{
		cardStore: cardStore,
		db:        db,
	}
}

func (a *cardRepositoryAdapter) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	return a.cardStore.GetByUserID(ctx, userID)
}

func (a *cardRepositoryAdapter) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Flashcard, error) {
	return a.cardStore.GetByID(ctx, id)
}

func (a *cardRepositoryAdapter) UpsertCards(
	ctx context.Context,
	cards []*domain.Flashcard,
) error {
	return a.cardStore.UpsertCards(ctx, cards)
}

func (a *cardRepositoryAdapter) WithTx(tx *sql.Tx) CardRepository {
	return &cardRepositoryAdapter{
		cardStore: a.cardStore.WithTxCardStore(tx),
		db:        a.db,
	}
}

func (a *cardRepositoryAdapter) DB() *sql.DB {
	return a.db
}
