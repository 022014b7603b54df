package cardset

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/domain/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptCandidatesInitializesNewWords(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewDefaultService()
	userID := uuid.New()
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	candidates := []domain.CandidateWord{
		{Word: "ubiquitous", Meaning: "present everywhere", Tier: domain.TierC1},
		{Word: "perspicacious", Meaning: "having keen insight", Tier: domain.TierC2},
	}

	result := AcceptCandidates(scheduler, nil, candidates, "Wired", userID, now)

	require.Len(t, result.Accepted, 2)
	assert.Empty(t, result.Rejected)

	for i, card := range result.Accepted {
		assert.Equal(t, candidates[i].Word, card.Word)
		assert.Equal(t, "Wired", card.Source)
		assert.Equal(t, userID, card.UserID)
		assert.Equal(t, domain.CardStateNew, card.State)
		assert.Equal(t, 0, card.Reps)
		assert.True(t, card.Due.Equal(now))
	}
}

func TestAcceptCandidatesRejectsCaseInsensitiveDuplicates(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewDefaultService()
	userID := uuid.New()
	now := time.Now().UTC()

	existing := AcceptCandidates(scheduler, nil,
		[]domain.CandidateWord{{Word: "Ubiquitous"}}, "seed", userID, now).Accepted

	candidates := []domain.CandidateWord{
		{Word: "UBIQUITOUS"},    // collides with existing, case-folded
		{Word: " ubiquitous "},  // collides after trimming
		{Word: "perspicacious"}, // genuinely new
	}

	result := AcceptCandidates(scheduler, existing, candidates, "Wired", userID, now)

	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "perspicacious", result.Accepted[0].Word)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, "UBIQUITOUS", result.Rejected[0].Word)
}

func TestAcceptCandidatesDedupsWithinBatch(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewDefaultService()
	now := time.Now().UTC()

	candidates := []domain.CandidateWord{
		{Word: "laconic"},
		{Word: "Laconic"},
		{Word: "LACONIC"},
	}

	result := AcceptCandidates(scheduler, nil, candidates, "batch", uuid.New(), now)

	require.Len(t, result.Accepted, 1, "only the first occurrence in a batch is accepted")
	assert.Len(t, result.Rejected, 2)
}

func TestAcceptCandidatesNeverProducesCollidingWords(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewDefaultService()
	userID := uuid.New()
	now := time.Now().UTC()

	existing := AcceptCandidates(scheduler, nil, []domain.CandidateWord{
		{Word: "alpha"}, {Word: "beta"},
	}, "seed", userID, now).Accepted

	candidates := []domain.CandidateWord{
		{Word: "Alpha"}, {Word: "gamma"}, {Word: "GAMMA"}, {Word: "delta"}, {Word: "beta"},
	}

	result := AcceptCandidates(scheduler, existing, candidates, "next", userID, now)

	seen := make(map[string]bool)
	for _, card := range existing {
		seen[card.NormalizedWord()] = true
	}
	for _, card := range result.Accepted {
		assert.False(t, seen[card.NormalizedWord()],
			"accepted word %q collides with an existing or earlier accepted word", card.Word)
		seen[card.NormalizedWord()] = true
	}
}

func TestAcceptCandidatesSkipsBlankWords(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewDefaultService()

	result := AcceptCandidates(scheduler, nil, []domain.CandidateWord{
		{Word: "   "}, {Word: ""},
	}, "noise", uuid.New(), time.Now().UTC())

	assert.Empty(t, result.Accepted)
	assert.Len(t, result.Rejected, 2)
}
