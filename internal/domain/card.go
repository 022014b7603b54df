package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardWordEmpty is returned when a card's word is empty.
	ErrCardWordEmpty = errors.New("card word cannot be empty")

	// ErrCardInvalidState is returned when a card's lifecycle state is not
	// one of the defined CardState values.
	ErrCardInvalidState = errors.New("card state is not a valid lifecycle state")

	// ErrCardDueBeforeCreated is returned when a card's due timestamp
	// precedes its creation timestamp.
	ErrCardDueBeforeCreated = errors.New("card due time cannot precede creation time")

	// ErrCardNegativeReps is returned when a card's repetition count is negative.
	ErrCardNegativeReps = errors.New("card repetition count cannot be negative")
)

// CardState represents the lifecycle state of a flashcard in the
// spaced repetition system.
type CardState int

// Possible card lifecycle states. Learning is declared for enum
// completeness but the scheduler never produces it: new cards graduate
// straight to Review on their first non-Again rating, and Relearning is
// only reachable through an Again rating.
const (
	CardStateNew        CardState = 0
	CardStateLearning   CardState = 1
	CardStateReview     CardState = 2
	CardStateRelearning CardState = 3
)

// IsValid reports whether the state is one of the defined lifecycle states.
func (s CardState) IsValid() bool {
	return s >= CardStateNew && s <= CardStateRelearning
}

// String returns a human-readable name for the state.
func (s CardState) String() string {
	switch s {
	case CardStateNew:
		return "new"
	case CardStateLearning:
		return "learning"
	case CardStateReview:
		return "review"
	case CardStateRelearning:
		return "relearning"
	default:
		return "unknown"
	}
}

// DifficultyTier is the CEFR difficulty classification assigned to
// vocabulary content by the extraction pipeline.
type DifficultyTier string

// Supported difficulty tiers.
const (
	TierC1 DifficultyTier = "C1"
	TierC2 DifficultyTier = "C2"
)

/// Flashcard is the unit of study material: a vocabulary entry extracted
// from an article plus the scheduling state that drives when it is next
// presented for review.
//
// Content fields (Word through Source) are immutable after creation.
// Scheduling fields are owned exclusively by the srs package. UpdatedAt
// is refreshed on every mutation and is the sole arbiter of merge
// precedence when two devices reconcile the same card.
type Flashcard struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`

	// Content, produced by the extraction pipeline.
	Word          string         `json:"word"`
	Pronunciation string         `json:"pronunciation"`
	Meaning       string         `json:"meaning"`
	Context       string         `json:"context"`
	Tier          DifficultyTier `json:"tier"`
	Source        string         `json:"source"`

	// Scheduling state.
	State         CardState `json:"state"`
	Due           time.Time `json:"due"`
	Reps          int       `json:"reps"`
	ElapsedDays   int       `json:"elapsedDays"`
	ScheduledDays int       `json:"scheduledDays"`

	// Stability and DifficultyRating are reserved for a future
	// continuous-parameter scheduling model. They are carried through
	// every operation but never drive current behavior.
	Stability        float64 `json:"stability"`
	DifficultyRating float64 `json:"difficultyRating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if strings.TrimSpace(c.Word) == "" {
		return ErrCardWordEmpty
	}

	if !c.State.IsValid() {
		return ErrCardInvalidState
	}

	if c.Due.Before(c.CreatedAt) {
		return ErrCardDueBeforeCreated
	}

	if c.Reps < 0 {
		return ErrCardNegativeReps
	}

	return nil
}

// NormalizedWord returns the word case-folded and trimmed for duplicate
// comparison. Two cards are considered duplicates for the same user when
// their normalized words are equal.
func (c *Flashcard) NormalizedWord() string {
	return NormalizeWord(c.Word)
}

// NormalizeWord case-folds and trims a word for duplicate comparison.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// IsDue reports whether the card is eligible for presentation at asOf.
func (c *Flashcard) IsDue(asOf time.Time) bool {
	return !c.Due.After(asOf)
}

// Clone returns a copy of the card. Flashcard contains only value fields,
// so a shallow copy is a full copy; the method exists to keep call sites
// explicit about when a copy is taken.
func (c *Flashcard) Clone() *Flashcard {
	clone := *c
	return &clone
}
