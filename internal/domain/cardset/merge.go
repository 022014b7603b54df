package cardset

import (
	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
)

// Merge reconciles an incoming batch of cards against a local set using
// whole-record last-write-wins keyed on UpdatedAt.
//
// For each incoming card: if a card with the same ID exists locally, the
// representation with the greater UpdatedAt is kept, and a tie keeps the
// local copy. Cards with unknown IDs are appended. Result ordering is the
// insertion order of the local set followed by genuinely new incoming
// entries, so repeated merges with the same inputs are stable.
//
// Merge is pure: neither input slice nor any card in them is modified.
// It is idempotent (Merge(a, Merge(a, b)) == Merge(a, b)) and therefore
// safe to call repeatedly with partial or stale sync payloads.
func Merge(local, incoming []*domain.Flashcard) []*domain.Flashcard {
	merged := make([]*domain.Flashcard, len(local))
	index := make(map[uuid.UUID]int, len(local))

	for i, card := range local {
		merged[i] = card
		index[card.ID] = i
	}

	for _, card := range incoming {
		pos, exists := index[card.ID]
		if !exists {
			index[card.ID] = len(merged)
			merged = append(merged, card)
			continue
		}

		if card.UpdatedAt.After(merged[pos].UpdatedAt) {
			merged[pos] = card
		}
	}

	return merged
}
