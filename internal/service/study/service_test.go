package study

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/domain/srs"
	"github.com/phrazzld/glossa-api/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService wires a study service against a throwaway sqlite store
// and the default scheduler.
func newTestService(t *testing.T) StudyService {
	t.Helper()

	cache, err := sqlite.Open(filepath.Join(t.TempDir(), "study.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, cache.Close())
	})

	repo := NewCardRepositoryAdapter(cache, cache.DB())
	return NewStudyService(repo, srs.NewDefaultService(), nil)
}

func seedCards(
	t *testing.T,
	service StudyService,
	userID uuid.UUID,
	now time.Time,
	words ...string,
) []*domain.Flashcard {
	t.Helper()

	candidates := make([]domain.CandidateWord, len(words))
	for i, word := range words {
		candidates[i] = domain.CandidateWord{
			Word:    word,
			Meaning: "a test meaning",
			Tier:    domain.TierC1,
		}
	}

	result, err := service.AcceptCandidates(context.Background(), userID, &domain.ArticleExtract{
		Title: "Seed Article",
		Words: candidates,
	}, now)
	require.NoError(t, err)
	require.Len(t, result.Accepted, len(words))
	return result.Accepted
}

func TestDueCardsReturnsOnlyDue(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	cards := seedCards(t, service, userID, now, "alpha", "beta", "gamma")

	// Push one card into the future by reviewing it with Good.
	_, err := service.SubmitReview(ctx, userID, cards[0].ID, domain.RatingGood, now)
	require.NoError(t, err)

	due, err := service.DueCards(ctx, userID, now, 1)
	require.NoError(t, err)
	assert.Len(t, due, 2, "the reviewed card is no longer due")
	for _, card := range due {
		assert.NotEqual(t, cards[0].ID, card.ID)
	}
}

func TestDueCardsOrderIsSeedDeterministic(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	seedCards(t, service, userID, now, "alpha", "beta", "gamma", "delta", "epsilon")

	first, err := service.DueCards(ctx, userID, now, 42)
	require.NoError(t, err)
	second, err := service.DueCards(ctx, userID, now, 42)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "same seed must give the same order")
	}
}

func TestSubmitReviewPersistsSchedule(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	cards := seedCards(t, service, userID, now, "saturnine")

	updated, err := service.SubmitReview(ctx, userID, cards[0].ID, domain.RatingGood, now)
	require.NoError(t, err)
	assert.Equal(t, domain.CardStateReview, updated.State)
	assert.Equal(t, 1, updated.Reps)
	assert.Equal(t, 3, updated.ScheduledDays)

	// The persisted copy must match what was returned.
	due, err := service.DueCards(ctx, userID, now.AddDate(0, 0, 3), 1)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].Reps)
}

func TestSubmitReviewAgainKeepsCardDue(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	cards := seedCards(t, service, userID, now, "saturnine")

	updated, err := service.SubmitReview(ctx, userID, cards[0].ID, domain.RatingAgain, now)
	require.NoError(t, err)
	assert.Equal(t, domain.CardStateRelearning, updated.State)
	assert.Equal(t, 0, updated.ScheduledDays)

	due, err := service.DueCards(ctx, userID, now, 1)
	require.NoError(t, err)
	assert.Len(t, due, 1, "a lapsed card stays in the session")
}

func TestSubmitReviewUnknownCard(t *testing.T) {
	t.Parallel()

	service := newTestService(t)

	_, err := service.SubmitReview(
		context.Background(), uuid.New(), uuid.New(), domain.RatingGood, time.Now().UTC())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestSubmitReviewForeignCard(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	cards := seedCards(t, service, owner, now, "saturnine")

	_, err := service.SubmitReview(ctx, uuid.New(), cards[0].ID, domain.RatingGood, now)
	assert.ErrorIs(t, err, ErrCardNotOwned)
}

func TestSubmitReviewInvalidRating(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	cards := seedCards(t, service, userID, now, "saturnine")

	for _, rating := range []domain.ReviewRating{0, 5, -1} {
		_, err := service.SubmitReview(ctx, userID, cards[0].ID, rating, now)
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestAcceptCandidatesDropsDuplicates(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	seedCards(t, service, userID, now, "alpha")

	result, err := service.AcceptCandidates(ctx, userID, &domain.ArticleExtract{
		Title: "Second Article",
		Words: []domain.CandidateWord{
			{Word: "ALPHA", Meaning: "duplicate of an existing card", Tier: domain.TierC1},
			{Word: "beta", Meaning: "a new word", Tier: domain.TierC2},
			{Word: "Beta", Meaning: "duplicate within the batch", Tier: domain.TierC2},
		},
	}, now)
	require.NoError(t, err)

	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "beta", result.Accepted[0].Word)
	assert.Len(t, result.Rejected, 2)

	all, err := service.DueCards(ctx, userID, now, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2, "only alpha and beta exist")
}

func TestAcceptCandidatesNilExtract(t *testing.T) {
	t.Parallel()

	service := newTestService(t)

	_, err := service.AcceptCandidates(
		context.Background(), uuid.New(), nil, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNilExtract)
}
