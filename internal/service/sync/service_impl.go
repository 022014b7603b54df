package sync

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/domain/cardset"
	"github.com/phrazzld/glossa-api/internal/platform/logger"
	"github.com/phrazzld/glossa-api/internal/store"
)

// Verify interface compliance at compile time
var _ SyncService = (*syncServiceImpl)(nil)

// syncServiceImpl implements the SyncService interface.
type syncServiceImpl struct {
	cardRepo CardRepository
	logger   *slog.Logger
}

// NewSyncService creates a new SyncService implementation.
func NewSyncService(cardRepo CardRepository, logger *slog.Logger) SyncService {
	if cardRepo == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardRepo cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &syncServiceImpl{
		cardRepo: cardRepo,
		logger:   logger.With(slog.String("component", "sync_service")),
	}
}

// Pull implements SyncService.Pull.
func (s *syncServiceImpl) Pull(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Error("failed to pull card set",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to pull card set: %w", err)
	}

	log.Debug("pulled card set",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// Push implements SyncService.Push.
// The read-merge-write runs in a single transaction so the returned
// merged set always reflects a consistent snapshot. Each card's
// reconciliation is independent; no cross-card coordination is needed.
func (s *syncServiceImpl) Push(
	ctx context.Context,
	userID uuid.UUID,
	incoming []*domain.Flashcard,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(incoming) == 0 {
		return nil, ErrEmptyBatch
	}

	for _, card := range incoming {
		if card.UserID != userID {
			log.Warn("rejected push containing foreign card",
				slog.String("user_id", userID.String()),
				slog.String("card_id", card.ID.String()),
				slog.String("owner_id", card.UserID.String()))
			return nil, ErrCardNotOwned
		}
	}

	var merged []*domain.Flashcard
	err := s.runInTransaction(ctx, func(ctx context.Context, repo CardRepository) error {
		current, err := repo.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load current card set: %w", err)
		}

		merged = cardset.Merge(current, incoming)

		// The store's own updated_at guard makes this idempotent: stale
		// incoming records simply do not write.
		if err := repo.UpsertCards(ctx, incoming); err != nil {
			return fmt.Errorf("failed to upsert pushed cards: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to push card batch",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("batch_size", len(incoming)))
		return nil, err
	}

	log.Debug("pushed card batch",
		slog.String("user_id", userID.String()),
		slog.Int("batch_size", len(incoming)),
		slog.Int("merged_size", len(merged)))
	return merged, nil
}

// runInTransaction runs the given function against a transactional repository.
func (s *syncServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repo CardRepository) error,
) error {
	return store.RunInTransaction(ctx, s.cardRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.cardRepo.WithTx(tx))
	})
}
