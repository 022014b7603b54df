package cardset

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/domain/srs"
)

// Acceptance is the result of filtering a candidate batch against an
// existing card set.
type Acceptance struct {
	// Accepted holds freshly initialized cards, one per candidate that
	// survived deduplication. No two entries share a normalized word and
	// none collide with the existing set.
	Accepted []*domain.Flashcard

	// Rejected holds the candidates dropped as duplicates. Dropping a
	// duplicate is expected behavior, not a failure.
	Rejected []domain.CandidateWord
}

// AcceptCandidates gates a batch of externally produced candidate words
// against a user's existing cards. Each candidate's word is case-folded
// and compared against the existing set plus candidates already accepted
// earlier in the same batch; survivors are initialized through the
// scheduler's creation rule.
//
// The operation is pure and total: the existing set is never modified and
// no failure mode exists.
func AcceptCandidates(
	scheduler srs.Service,
	existing []*domain.Flashcard,
	candidates []domain.CandidateWord,
	sourceLabel string,
	userID uuid.UUID,
	now time.Time,
) Acceptance {
	seen := make(map[string]bool, len(existing)+len(candidates))
	for _, card := range existing {
		seen[card.NormalizedWord()] = true
	}

	var result Acceptance
	for _, candidate := range candidates {
		normalized := domain.NormalizeWord(candidate.Word)
		if normalized == "" || seen[normalized] {
			result.Rejected = append(result.Rejected, candidate)
			continue
		}

		seen[normalized] = true
		result.Accepted = append(result.Accepted, scheduler.Initialize(candidate, sourceLabel, userID, now))
	}

	return result
}
