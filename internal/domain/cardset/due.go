package cardset

import (
	"math/rand"
	"time"

	"github.com/phrazzld/glossa-api/internal/domain"
)

// FindDue returns all cards whose due timestamp is at or before asOf.
// Order is the order of the input set; callers apply their own
// presentation ordering (see Shuffle).
func FindDue(cards []*domain.Flashcard, asOf time.Time) []*domain.Flashcard {
	var due []*domain.Flashcard
	for _, card := range cards {
		if card.IsDue(asOf) {
			due = append(due, card)
		}
	}
	return due
}

// FindDueByEndOfDay returns all cards that become due by the end of the
// calendar day containing asOf, in asOf's location.
func FindDueByEndOfDay(cards []*domain.Flashcard, asOf time.Time) []*domain.Flashcard {
	year, month, day := asOf.Date()
	endOfDay := time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), asOf.Location())
	return FindDue(cards, endOfDay)
}

// Shuffle returns a copy of cards in a pseudo-random order derived from
// seed. Study sessions pass a per-session seed so presentation order is
// randomized for the user but reproducible in tests; the scheduler itself
// never consults ambient randomness.
func Shuffle(cards []*domain.Flashcard, seed int64) []*domain.Flashcard {
	shuffled := make([]*domain.Flashcard, len(cards))
	copy(shuffled, cards)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}
