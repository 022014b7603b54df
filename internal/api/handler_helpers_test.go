package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/api/shared"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/domain/srs"
	"github.com/phrazzld/glossa-api/internal/platform/sqlite"
	"github.com/phrazzld/glossa-api/internal/service/study"
	syncservice "github.com/phrazzld/glossa-api/internal/service/sync"
	"github.com/stretchr/testify/require"
)

// testServices bundles the real services the handler tests run against,
// backed by a throwaway sqlite store.
type testServices struct {
	study study.StudyService
	sync  syncservice.SyncService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	cache, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, cache.Close())
	})

	scheduler := srs.NewDefaultService()
	return testServices{
		study: study.NewStudyService(
			study.NewCardRepositoryAdapter(cache, cache.DB()), scheduler, slog.Default()),
		sync: syncservice.NewSyncService(
			syncservice.NewCardRepositoryAdapter(cache, cache.DB()), slog.Default()),
	}
}

// authenticatedRequest builds a request whose context carries the given
// user ID, as the auth middleware would have set it.
func authenticatedRequest(
	t *testing.T,
	method, target string,
	userID uuid.UUID,
	body interface{},
) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

// seedCard inserts one card for the user through the study service and
// returns it.
func seedCard(t *testing.T, services testServices, userID uuid.UUID, word string) *domain.Flashcard {
	t.Helper()

	result, err := services.study.AcceptCandidates(context.Background(), userID, &domain.ArticleExtract{
		Title: "Seed Article",
		Words: []domain.CandidateWord{
			{Word: word, Meaning: "a seeded meaning", Tier: domain.TierC1},
		},
	}, time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	return result.Accepted[0]
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}
