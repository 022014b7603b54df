package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/api/shared"
	"github.com/phrazzld/glossa-api/internal/platform/logger"
	syncservice "github.com/phrazzld/glossa-api/internal/service/sync"
)

// SyncHandler handles multi-device synchronization HTTP requests.
type SyncHandler struct {
	syncService syncservice.SyncService
	logger      *slog.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService syncservice.SyncService, logger *slog.Logger) *SyncHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SyncHandler")
	}

	return &SyncHandler{
		syncService: syncService,
		logger:      logger.With(slog.String("component", "sync_handler")),
	}
}

// GetCards handles GET /cards requests.
// It returns the authenticated user's full card set, the payload a
// device uses to seed or refresh its local cache.
func (h *SyncHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	cards, err := h.syncService.Pull(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to load card set", err)
		return
	}

	log.Debug("card set pulled",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, CardSetResponse{Cards: CardsToPayloads(cards)})
}

// SyncCards handles POST /cards/sync requests.
// It applies the pushed batch to the server's card set with
// last-write-wins conflict resolution and returns the merged set, so a
// device finishes a sync holding exactly what the server holds.
func (h *SyncHandler) SyncCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SyncPushRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Sync batch must contain at least one card")
		return
	}

	merged, err := h.syncService.Push(r.Context(), userID, PayloadsToCards(req.Cards))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card batch synced",
		slog.String("user_id", userID.String()),
		slog.Int("pushed", len(req.Cards)),
		slog.Int("merged", len(merged)))
	shared.RespondWithJSON(w, r, http.StatusOK, CardSetResponse{Cards: CardsToPayloads(merged)})
}
