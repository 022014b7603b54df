package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/domain/cardset"
	"github.com/phrazzld/glossa-api/internal/domain/srs"
	"github.com/phrazzld/glossa-api/internal/platform/logger"
	"github.com/phrazzld/glossa-api/internal/store"
)

// Verify interface compliance at compile time
var _ StudyService = (*studyServiceImpl)(nil)

// studyServiceImpl implements the StudyService interface.
type studyServiceImpl struct {
	cardRepo  CardRepository
	scheduler srs.Service
	logger    *slog.Logger
}

// NewStudyService creates a new StudyService implementation.
func NewStudyService(
	cardRepo CardRepository,
	scheduler srs.Service,
	logger *slog.Logger,
) StudyService {
	if cardRepo == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardRepo cannot be nil")
	}

	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &studyServiceImpl{
		cardRepo:  cardRepo,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "study_service")),
	}
}

// DueCards implements StudyService.DueCards.
func (s *studyServiceImpl) DueCards(
	ctx context.Context,
	userID uuid.UUID,
	asOf time.Time,
	seed int64,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Error("failed to load card set for due query",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load card set: %w", err)
	}

	due := cardset.Shuffle(cardset.FindDue(cards, asOf), seed)

	log.Debug("computed due cards",
		slog.String("user_id", userID.String()),
		slog.Int("total", len(cards)),
		slog.Int("due", len(due)))
	return due, nil
}

// SubmitReview implements StudyService.SubmitReview.
// Load, ownership check, scheduling, and write all run in one
// transaction so a concurrent sync cannot interleave between the read
// and the write.
func (s *studyServiceImpl) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	rating domain.ReviewRating,
	now time.Time,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}

	var updated *domain.Flashcard
	err := s.runInTransaction(ctx, func(ctx context.Context, repo CardRepository) error {
		card, err := repo.GetByID(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to load card: %w", err)
		}

		if card.UserID != userID {
			return ErrCardNotOwned
		}

		next, err := s.scheduler.Review(card, rating, now)
		if err != nil {
			if errors.Is(err, srs.ErrInvalidRating) {
				return ErrInvalidRating
			}
			return fmt.Errorf("failed to compute next state: %w", err)
		}

		if err := repo.UpsertCards(ctx, []*domain.Flashcard{next}); err != nil {
			return fmt.Errorf("failed to save reviewed card: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrCardNotOwned) ||
			errors.Is(err, ErrInvalidRating) {
			return nil, err
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("rating", rating.String()),
		slog.String("state", updated.State.String()),
		slog.Int("scheduled_days", updated.ScheduledDays))
	return updated, nil
}

// AcceptCandidates implements StudyService.AcceptCandidates.
func (s *studyServiceImpl) AcceptCandidates(
	ctx context.Context,
	userID uuid.UUID,
	extract *domain.ArticleExtract,
	now time.Time,
) (cardset.Acceptance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if extract == nil {
		return cardset.Acceptance{}, ErrNilExtract
	}

	var result cardset.Acceptance
	err := s.runInTransaction(ctx, func(ctx context.Context, repo CardRepository) error {
		existing, err := repo.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load existing card set: %w", err)
		}

		result = cardset.AcceptCandidates(
			s.scheduler, existing, extract.Words, extract.SourceLabel(), userID, now)

		if len(result.Accepted) == 0 {
			return nil
		}

		if err := repo.UpsertCards(ctx, result.Accepted); err != nil {
			return fmt.Errorf("failed to save accepted cards: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to accept candidates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("candidate_count", len(extract.Words)))
		return cardset.Acceptance{}, err
	}

	log.Info("accepted candidate words",
		slog.String("user_id", userID.String()),
		slog.String("source", extract.SourceLabel()),
		slog.Int("accepted", len(result.Accepted)),
		slog.Int("rejected", len(result.Rejected)))
	return result, nil
}

// runInTransaction runs the given function against a transactional repository.
func (s *studyServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repo CardRepository) error,
) error {
	return store.RunInTransaction(ctx, s.cardRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.cardRepo.WithTx(tx))
	})
}
