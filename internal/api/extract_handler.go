package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/api/shared"
	"github.com/phrazzld/glossa-api/internal/generation"
	"github.com/phrazzld/glossa-api/internal/platform/logger"
	"github.com/phrazzld/glossa-api/internal/service/study"
	"github.com/phrazzld/glossa-api/internal/task"
)

// ExtractHandler handles article extraction HTTP requests, both the
// synchronous path and the fire-and-forget async path.
type ExtractHandler struct {
	extractor    generation.Extractor
	studyService study.StudyService
	runner       *task.Runner
	logger       *slog.Logger
}

// NewExtractHandler creates a new ExtractHandler
func NewExtractHandler(
	extractor generation.Extractor,
	studyService study.StudyService,
	runner *task.Runner,
	logger *slog.Logger,
) *ExtractHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ExtractHandler")
	}

	return &ExtractHandler{
		extractor:    extractor,
		studyService: studyService,
		runner:       runner,
		logger:       logger.With(slog.String("component", "extract_handler")),
	}
}

// CreateExtract handles POST /extracts requests.
// It runs extraction synchronously and folds the accepted candidates
// into the user's card set, reporting both accepted and rejected words.
func (h *ExtractHandler) CreateExtract(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ExtractRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Article text is required")
		return
	}

	extract, err := h.extractor.ExtractWords(r.Context(), req.ArticleText)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			extractionStatusCode(err), "Failed to extract words from article", err)
		return
	}

	result, err := h.studyService.AcceptCandidates(r.Context(), userID, extract, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("extraction completed",
		slog.String("user_id", userID.String()),
		slog.String("source", extract.SourceLabel()),
		slog.Int("accepted", len(result.Accepted)),
		slog.Int("rejected", len(result.Rejected)))

	shared.RespondWithJSON(w, r, http.StatusCreated, ExtractResponse{
		Title:    extract.Title,
		Summary:  extract.Summary,
		Author:   extract.Author,
		Accepted: CardsToPayloads(result.Accepted),
		Rejected: CandidatesToPayloads(result.Rejected),
	})
}

// CreateExtractAsync handles POST /extracts/async requests.
// It enqueues the extraction as a background task and returns
// immediately with 202 Accepted.
func (h *ExtractHandler) CreateExtractAsync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ExtractRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Article text is required")
		return
	}

	extractionTask, err := task.NewArticleExtractionTask(
		userID, req.ArticleText, h.extractor, h.studyService, h.logger)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusBadRequest, "Failed to create extraction task", err)
		return
	}

	if err := h.runner.Submit(r.Context(), extractionTask); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, task.ErrQueueFull) {
			status = http.StatusServiceUnavailable
		}
		shared.RespondWithErrorAndLog(w, r, status, "Extraction queue unavailable", err)
		return
	}

	log.Info("extraction task enqueued",
		slog.String("user_id", userID.String()),
		slog.String("task_id", extractionTask.ID().String()))

	shared.RespondWithJSON(w, r, http.StatusAccepted, ExtractAsyncResponse{
		TaskID: extractionTask.ID(),
		Status: "pending",
	})
}

// extractionStatusCode maps extraction pipeline errors onto HTTP status
// codes; the core error mapper doesn't know the generation taxonomy.
func extractionStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway
	case errors.Is(err, generation.ErrTransientFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
