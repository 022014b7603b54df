package domain

import "errors"

// ErrInvalidRating is returned when a review rating is not one of the
// four defined grades.
var ErrInvalidRating = errors.New("invalid review rating")

// ReviewRating is the user's self-assessed recall quality for a card,
// submitted once per presentation during a study session.
type ReviewRating int

// Possible review ratings, ordered from complete failure to effortless recall.
const (
	RatingAgain ReviewRating = 1
	RatingHard  ReviewRating = 2
	RatingGood  ReviewRating = 3
	RatingEasy  ReviewRating = 4
)

// IsValid reports whether the rating is one of the four defined grades.
func (r ReviewRating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// String returns a human-readable name for the rating.
func (r ReviewRating) String() string {
	switch r {
	case RatingAgain:
		return "again"
	case RatingHard:
		return "hard"
	case RatingGood:
		return "good"
	case RatingEasy:
		return "easy"
	default:
		return "unknown"
	}
}
