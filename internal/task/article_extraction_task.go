package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/generation"
	"github.com/phrazzld/glossa-api/internal/service/study"
)

// ErrEmptyArticleText is returned when an extraction task is created
// without article text.
var ErrEmptyArticleText = errors.New("article text cannot be empty")

// ArticleExtractionTask mines candidate words from an article and folds
// the survivors into the owning user's card set.
type ArticleExtractionTask struct {
	id           uuid.UUID
	userID       uuid.UUID
	articleText  string
	extractor    generation.Extractor
	studyService study.StudyService
	logger       *slog.Logger
}

// Ensure ArticleExtractionTask implements the Task interface
var _ Task = (*ArticleExtractionTask)(nil)

// NewArticleExtractionTask creates a new extraction task for the given
// user and article text.
func NewArticleExtractionTask(
	userID uuid.UUID,
	articleText string,
	extractor generation.Extractor,
	studyService study.StudyService,
	logger *slog.Logger,
) (*ArticleExtractionTask, error) {
	if userID == uuid.Nil {
		return nil, errors.New("user ID cannot be nil")
	}

	if articleText == "" {
		return nil, ErrEmptyArticleText
	}

	if extractor == nil {
		return nil, errors.New("extractor cannot be nil")
	}

	if studyService == nil {
		return nil, errors.New("study service cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ArticleExtractionTask{
		id:           uuid.New(),
		userID:       userID,
		articleText:  articleText,
		extractor:    extractor,
		studyService: studyService,
		logger:       logger.With(slog.String("component", "article_extraction_task")),
	}, nil
}

// ID implements Task.ID
func (t *ArticleExtractionTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type
func (t *ArticleExtractionTask) Type() string {
	return TaskTypeArticleExtraction
}

// Execute implements Task.Execute: extract candidates from the article,
// then accept them into the user's card set.
func (t *ArticleExtractionTask) Execute(ctx context.Context) error {
	log := t.logger.With(
		slog.String("task_id", t.id.String()),
		slog.String("user_id", t.userID.String()))

	extract, err := t.extractor.ExtractWords(ctx, t.articleText)
	if err != nil {
		return fmt.Errorf("failed to extract words: %w", err)
	}

	result, err := t.studyService.AcceptCandidates(ctx, t.userID, extract, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to accept candidates: %w", err)
	}

	log.Info("article extraction finished",
		slog.String("source", extract.SourceLabel()),
		slog.Int("accepted", len(result.Accepted)),
		slog.Int("rejected", len(result.Rejected)))
	return nil
}
