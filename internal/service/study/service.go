// Package study implements the study loop: listing the cards due for
// review, grading a single review, and folding accepted candidate words
// into a user's card set. Scheduling math lives in domain/srs; this
// package owns ownership checks, persistence, and transaction scope.
package study

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/domain/cardset"
)

// Common service errors
var (
	// ErrCardNotFound is returned when the requested card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNotOwned is returned when a card exists but belongs to a
	// different user than the authenticated one.
	ErrCardNotOwned = errors.New("card does not belong to the user")

	// ErrInvalidRating is returned when a review rating is outside the
	// four defined grades.
	ErrInvalidRating = errors.New("invalid review rating")

	// ErrNilExtract is returned when candidate acceptance is invoked
	// without an extract.
	ErrNilExtract = errors.New("extract cannot be nil")
)

// CardRepository defines the persistence operations the study service
// needs. It is satisfied by an adapter over store.CardStore.
type CardRepository interface {
	// GetByUserID retrieves a user's full card set.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// GetByID retrieves a single card by its unique ID.
	// Returns store.ErrCardNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// UpsertCards saves a batch with last-write-wins semantics.
	UpsertCards(ctx context.Context, cards []*domain.Flashcard) error

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *sql.Tx) CardRepository

	// DB returns the underlying database handle for transaction control.
	DB() *sql.DB
}

// StudyService drives a user's review sessions and vocabulary growth.
type StudyService interface {
	// DueCards returns the cards due at or before asOf, in a pseudo-random
	// order derived from seed. The same (set, asOf, seed) always yields
	// the same ordering.
	DueCards(
		ctx context.Context,
		userID uuid.UUID,
		asOf time.Time,
		seed int64,
	) ([]*domain.Flashcard, error)

	// SubmitReview grades one card and persists its next scheduling state,
	// returning the updated card. The card must exist and belong to the
	// user; the rating must be one of the four grades.
	SubmitReview(
		ctx context.Context,
		userID uuid.UUID,
		cardID uuid.UUID,
		rating domain.ReviewRating,
		now time.Time,
	) (*domain.Flashcard, error)

	// AcceptCandidates folds an article extract's candidate words into the
	// user's card set, dropping duplicates against existing cards and
	// within the batch. Accepted cards are persisted; the returned
	// Acceptance reports both outcomes.
	AcceptCandidates(
		ctx context.Context,
		userID uuid.UUID,
		extract *domain.ArticleExtract,
		now time.Time,
	) (cardset.Acceptance, error)
}
