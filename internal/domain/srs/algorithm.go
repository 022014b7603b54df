package srs

import (
	"math"
	"time"

	"github.com/phrazzld/glossa-api/internal/domain"
)

// calculateNewInterval determines the next interval in whole days based on
// the review rating and the interval chosen by the previous review.
//
// The rating-specific behavior is deliberately asymmetric:
//   - "Again" resets the interval to 0; the card is due immediately.
//   - "Hard" multiplies the prior interval directly, so a card that has
//     never been scheduled out (prior interval 0) lands on the one-day floor.
//   - "Good" and "Easy" substitute 1 for a zero prior interval before
//     multiplying, so a fresh card jumps straight to a multi-day interval.
//
// The raw product is floored at params.MinIntervalDays and then rounded to
// the nearest whole day.
func calculateNewInterval(
	scheduledDays int,
	rating domain.ReviewRating,
	params *Params,
) int {
	if rating == domain.RatingAgain {
		return 0
	}

	prior := float64(scheduledDays)

	var raw float64
	switch rating {
	case domain.RatingHard:
		raw = prior * params.HardMultiplier
	case domain.RatingGood:
		if prior == 0 {
			prior = 1
		}
		raw = prior * params.GoodMultiplier
	case domain.RatingEasy:
		if prior == 0 {
			prior = 1
		}
		raw = prior * params.EasyMultiplier
	}

	return int(math.Round(math.Max(params.MinIntervalDays, raw)))
}

// calculateNewState determines the lifecycle state after a review.
// Any non-Again rating lands on Review, including the first review of a
// New card; Again always drops the card into Relearning.
func calculateNewState(rating domain.ReviewRating) domain.CardState {
	if rating == domain.RatingAgain {
		return domain.CardStateRelearning
	}
	return domain.CardStateReview
}

// calculateNextCard produces the card's full post-review scheduling state.
//
// It follows the immutable update pattern: the input card is never
// modified, a new Flashcard is returned. Identity, content, CreatedAt,
// and the reserved Stability/DifficultyRating pair are carried over
// unchanged. Reps increments unconditionally, regardless of rating.
func calculateNextCard(
	card *domain.Flashcard,
	rating domain.ReviewRating,
	now time.Time,
	params *Params,
) *domain.Flashcard {
	next := card.Clone()

	next.ElapsedDays = elapsedDays(card.UpdatedAt, now)
	next.ScheduledDays = calculateNewInterval(card.ScheduledDays, rating, params)
	next.State = calculateNewState(rating)
	next.Due = now.AddDate(0, 0, next.ScheduledDays)
	next.Reps = card.Reps + 1
	next.UpdatedAt = now

	return next
}

// elapsedDays returns the whole days between the card's previous mutation
// and now, clamped at zero. Recorded as bookkeeping only; it never drives
// the interval computation.
func elapsedDays(since, now time.Time) int {
	if since.IsZero() || !now.After(since) {
		return 0
	}
	return int(now.Sub(since).Hours() / 24)
}
