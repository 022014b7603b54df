package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validCard() *Flashcard {
	now := time.Now().UTC()
	return &Flashcard{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Word:      "obfuscate",
		Meaning:   "to make unclear",
		Tier:      TierC1,
		Source:    "manual",
		State:     CardStateNew,
		Due:       now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFlashcardValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(*Flashcard)
		expected error
	}{
		{
			name:     "valid card passes",
			mutate:   func(c *Flashcard) {},
			expected: nil,
		},
		{
			name:     "nil ID fails",
			mutate:   func(c *Flashcard) { c.ID = uuid.Nil },
			expected: ErrCardIDEmpty,
		},
		{
			name:     "nil user ID fails",
			mutate:   func(c *Flashcard) { c.UserID = uuid.Nil },
			expected: ErrCardUserIDEmpty,
		},
		{
			name:     "blank word fails",
			mutate:   func(c *Flashcard) { c.Word = "  " },
			expected: ErrCardWordEmpty,
		},
		{
			name:     "unknown state fails",
			mutate:   func(c *Flashcard) { c.State = CardState(9) },
			expected: ErrCardInvalidState,
		},
		{
			name:     "due before creation fails",
			mutate:   func(c *Flashcard) { c.Due = c.CreatedAt.Add(-time.Second) },
			expected: ErrCardDueBeforeCreated,
		},
		{
			name:     "negative reps fail",
			mutate:   func(c *Flashcard) { c.Reps = -1 },
			expected: ErrCardNegativeReps,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card := validCard()
			tc.mutate(card)

			err := card.Validate()
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "café", NormalizeWord("  CAFÉ "))
	assert.Equal(t, "hello world", NormalizeWord("Hello World"))
	assert.Equal(t, "", NormalizeWord("   "))

	card := validCard()
	card.Word = " Obfuscate "
	assert.Equal(t, "obfuscate", card.NormalizedWord())
}

func TestFlashcardIsDue(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	card := validCard()

	card.Due = now.Add(-time.Minute)
	assert.True(t, card.IsDue(now))

	card.Due = now
	assert.True(t, card.IsDue(now), "a card due exactly now is eligible")

	card.Due = now.Add(time.Minute)
	assert.False(t, card.IsDue(now))
}

func TestCardStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "new", CardStateNew.String())
	assert.Equal(t, "learning", CardStateLearning.String())
	assert.Equal(t, "review", CardStateReview.String())
	assert.Equal(t, "relearning", CardStateRelearning.String())
	assert.Equal(t, "unknown", CardState(42).String())
}

func TestReviewRatingValidity(t *testing.T) {
	t.Parallel()

	for _, rating := range []ReviewRating{RatingAgain, RatingHard, RatingGood, RatingEasy} {
		assert.True(t, rating.IsValid())
	}
	for _, rating := range []ReviewRating{0, 5, -3} {
		assert.False(t, rating.IsValid())
	}
}

func TestArticleExtractSourceLabel(t *testing.T) {
	t.Parallel()

	extract := &ArticleExtract{Title: "  The Art of Memory  "}
	assert.Equal(t, "The Art of Memory", extract.SourceLabel())

	blank := &ArticleExtract{}
	assert.Equal(t, "manual", blank.SourceLabel())
}
