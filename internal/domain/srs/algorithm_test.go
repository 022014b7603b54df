package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
)

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  int
		rating   domain.ReviewRating
		expected int
	}{
		{
			name:     "Again rating should reset interval",
			current:  10,
			rating:   domain.RatingAgain,
			expected: 0,
		},
		{
			name:     "Again rating resets even a fresh card",
			current:  0,
			rating:   domain.RatingAgain,
			expected: 0,
		},
		{
			name:     "Hard rating uses raw prior interval with one-day floor",
			current:  0,
			rating:   domain.RatingHard,
			expected: 1, // max(1, 0 * 1.2) = 1
		},
		{
			name:     "Hard rating should slightly increase interval",
			current:  10,
			rating:   domain.RatingHard,
			expected: 12, // 10 * 1.2 = 12
		},
		{
			name:     "Good rating substitutes one day for a fresh card",
			current:  0,
			rating:   domain.RatingGood,
			expected: 3, // max(1, 1 * 2.5) = 2.5 → 3
		},
		{
			name:     "Good rating should increase interval by growth multiplier",
			current:  10,
			rating:   domain.RatingGood,
			expected: 25, // 10 * 2.5 = 25
		},
		{
			name:     "Easy rating substitutes one day for a fresh card",
			current:  0,
			rating:   domain.RatingEasy,
			expected: 4, // max(1, 1 * 4) = 4
		},
		{
			name:     "Easy rating should significantly increase interval",
			current:  2,
			rating:   domain.RatingEasy,
			expected: 8, // 2 * 4 = 8
		},
		{
			name:     "Rounding is to the nearest whole day",
			current:  3,
			rating:   domain.RatingHard,
			expected: 4, // 3 * 1.2 = 3.6 → 4
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newInterval := calculateNewInterval(tc.current, tc.rating, params)

			if newInterval != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, newInterval)
			}
		})
	}
}

func TestCalculateNewState(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		rating   domain.ReviewRating
		expected domain.CardState
	}{
		{
			name:     "Again rating drops the card into relearning",
			rating:   domain.RatingAgain,
			expected: domain.CardStateRelearning,
		},
		{
			name:     "Hard rating lands on review",
			rating:   domain.RatingHard,
			expected: domain.CardStateReview,
		},
		{
			name:     "Good rating lands on review",
			rating:   domain.RatingGood,
			expected: domain.CardStateReview,
		},
		{
			name:     "Easy rating lands on review",
			rating:   domain.RatingEasy,
			expected: domain.CardStateReview,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newState := calculateNewState(tc.rating)

			if newState != tc.expected {
				t.Errorf("Expected state %v, got %v", tc.expected, newState)
			}
		})
	}
}

func TestCalculateNextCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	card := &domain.Flashcard{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Word:          "perfunctory",
		Pronunciation: "/pərˈfʌŋkt(ə)ri/",
		Meaning:       "carried out with minimal effort",
		Context:       "He gave a perfunctory nod.",
		Tier:          domain.TierC1,
		Source:        "The Economist",
		State:         domain.CardStateReview,
		Due:           now,
		Reps:          3,
		ScheduledDays: 4,
		CreatedAt:     created,
		UpdatedAt:     created,
	}

	t.Run("Good review reschedules and increments reps", func(t *testing.T) {
		next := calculateNextCard(card, domain.RatingGood, now, params)

		if next.ScheduledDays != 10 { // 4 * 2.5 = 10
			t.Errorf("Expected scheduled days 10, got %d", next.ScheduledDays)
		}
		if !next.Due.Equal(now.AddDate(0, 0, 10)) {
			t.Errorf("Expected due %v, got %v", now.AddDate(0, 0, 10), next.Due)
		}
		if next.Reps != 4 {
			t.Errorf("Expected reps 4, got %d", next.Reps)
		}
		if next.State != domain.CardStateReview {
			t.Errorf("Expected state review, got %v", next.State)
		}
		if !next.UpdatedAt.Equal(now) {
			t.Errorf("Expected updatedAt %v, got %v", now, next.UpdatedAt)
		}
		if next.ElapsedDays != 9 {
			t.Errorf("Expected elapsed days 9, got %d", next.ElapsedDays)
		}
	})

	t.Run("Again review is due immediately and still increments reps", func(t *testing.T) {
		next := calculateNextCard(card, domain.RatingAgain, now, params)

		if next.ScheduledDays != 0 {
			t.Errorf("Expected scheduled days 0, got %d", next.ScheduledDays)
		}
		if !next.Due.Equal(now) {
			t.Errorf("Expected due %v, got %v", now, next.Due)
		}
		if next.Reps != 4 {
			t.Errorf("Expected reps 4, got %d", next.Reps)
		}
		if next.State != domain.CardStateRelearning {
			t.Errorf("Expected state relearning, got %v", next.State)
		}
	})

	t.Run("Identity and content are carried over unchanged", func(t *testing.T) {
		next := calculateNextCard(card, domain.RatingEasy, now, params)

		if next.ID != card.ID || next.UserID != card.UserID {
			t.Error("Expected identity fields to be unchanged")
		}
		if next.Word != card.Word || next.Meaning != card.Meaning || next.Source != card.Source {
			t.Error("Expected content fields to be unchanged")
		}
		if !next.CreatedAt.Equal(card.CreatedAt) {
			t.Errorf("Expected createdAt %v, got %v", card.CreatedAt, next.CreatedAt)
		}
		if next.Stability != card.Stability || next.DifficultyRating != card.DifficultyRating {
			t.Error("Expected reserved scheduling fields to be carried through verbatim")
		}
	})

	t.Run("Input card is never modified", func(t *testing.T) {
		before := *card
		_ = calculateNextCard(card, domain.RatingGood, now, params)

		if *card != before {
			t.Error("Expected input card to be unchanged")
		}
	})
}
