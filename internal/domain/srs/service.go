package srs

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
)

// Common errors
var (
	ErrNilCard       = errors.New("card cannot be nil")
	ErrInvalidRating = errors.New("invalid review rating")
)

// Service defines the interface for scheduling operations.
// Both operations are pure with respect to their inputs: callers supply
// "now" explicitly, and identical inputs always yield identical outputs.
type Service interface {
	// Initialize produces a brand-new card for an accepted candidate word:
	// state New, zero reps, due immediately.
	Initialize(
		candidate domain.CandidateWord,
		sourceLabel string,
		userID uuid.UUID,
		now time.Time,
	) *domain.Flashcard

	// Review computes the card's next scheduling state from a review rating.
	// Returns ErrInvalidRating if the rating is not one of the four grades;
	// this is the only failure mode.
	Review(
		card *domain.Flashcard,
		rating domain.ReviewRating,
		now time.Time,
	) (*domain.Flashcard, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Initialize implements the Service interface for creating new cards
func (s *defaultService) Initialize(
	candidate domain.CandidateWord,
	sourceLabel string,
	userID uuid.UUID,
	now time.Time,
) *domain.Flashcard {
	return &domain.Flashcard{
		ID:               uuid.New(),
		UserID:           userID,
		Word:             candidate.Word,
		Pronunciation:    candidate.Pronunciation,
		Meaning:          candidate.Meaning,
		Context:          candidate.Context,
		Tier:             candidate.Tier,
		Source:           sourceLabel,
		State:            domain.CardStateNew,
		Due:              now,
		Reps:             0,
		ElapsedDays:      0,
		ScheduledDays:    0,
		Stability:        0,
		DifficultyRating: 0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Review implements the Service interface for computing review transitions
func (s *defaultService) Review(
	card *domain.Flashcard,
	rating domain.ReviewRating,
	now time.Time,
) (*domain.Flashcard, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !rating.IsValid() {
		return nil, ErrInvalidRating
	}

	return calculateNextCard(card, rating, now, s.params), nil
}
