package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// upsertCardQuery replaces the full mutable record, but only when the
// incoming updated_at is strictly greater than the stored one. A stale
// or replayed batch is therefore a no-op, which is what makes sync
// submissions safely retryable.
const upsertCardQuery = `
INSERT INTO flashcards (
	id, user_id, word, pronunciation, meaning, context, tier, source,
	state, due, reps, elapsed_days, scheduled_days, stability,
	difficulty_rating, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
ON CONFLICT (id) DO UPDATE SET
	state             = EXCLUDED.state,
	due               = EXCLUDED.due,
	reps              = EXCLUDED.reps,
	elapsed_days      = EXCLUDED.elapsed_days,
	scheduled_days    = EXCLUDED.scheduled_days,
	stability         = EXCLUDED.stability,
	difficulty_rating = EXCLUDED.difficulty_rating,
	updated_at        = EXCLUDED.updated_at
WHERE flashcards.updated_at < EXCLUDED.updated_at`

const selectCardColumns = `
	id, user_id, word, pronunciation, meaning, context, tier, source,
	state, due, reps, elapsed_days, scheduled_days, stability,
	difficulty_rating, created_at, updated_at`

// UpsertCards implements store.CardStore.UpsertCards.
// It saves a batch of cards with insert-or-replace semantics guarded by
// last-write-wins on updated_at. Run it inside a transaction via
// WithTxCardStore for batch atomicity.
func (s *PostgresCardStore) UpsertCards(ctx context.Context, cards []*domain.Flashcard) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	for _, card := range cards {
		_, err := s.db.ExecContext(ctx, upsertCardQuery,
			card.ID,
			card.UserID,
			card.Word,
			card.Pronunciation,
			card.Meaning,
			card.Context,
			string(card.Tier),
			card.Source,
			int(card.State),
			card.Due,
			card.Reps,
			card.ElapsedDays,
			card.ScheduledDays,
			card.Stability,
			card.DifficultyRating,
			card.CreatedAt,
			card.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				// The partial unique index on (user_id, lower(word))
				// backstops the in-memory dedup.
				return fmt.Errorf("%w: %q", store.ErrWordExists, card.Word)
			}
			return store.NewStoreError("card", "upsert", "failed to upsert card", err)
		}
	}

	s.logger.DebugContext(ctx, "upserted card batch",
		slog.Int("count", len(cards)))
	return nil
}

// GetByUserID implements store.CardStore.GetByUserID.
// It retrieves a user's full card set ordered by creation time.
func (s *PostgresCardStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	query := `SELECT` + selectCardColumns + `
		FROM flashcards
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, store.NewStoreError("card", "list", "failed to query cards", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "failed to close rows",
				slog.String("error", closeErr.Error()))
		}
	}()

	var cards []*domain.Flashcard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, store.NewStoreError("card", "list", "failed to scan card row", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", "list", "row iteration failed", err)
	}

	return cards, nil
}

// GetByID implements store.CardStore.GetByID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Flashcard, error) {
	query := `SELECT` + selectCardColumns + `
		FROM flashcards
		WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)

	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, store.NewStoreError("card", "get", "failed to scan card row", err)
	}

	return card, nil
}

// WithTxCardStore implements store.CardStore.WithTxCardStore.
// It returns a new CardStore that runs all operations on the given transaction.
func (s *PostgresCardStore) WithTxCardStore(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard maps one flashcards row onto a domain.Flashcard.
func scanCard(row rowScanner) (*domain.Flashcard, error) {
	var (
		card  domain.Flashcard
		tier  string
		state int
	)

	err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.Word,
		&card.Pronunciation,
		&card.Meaning,
		&card.Context,
		&tier,
		&card.Source,
		&state,
		&card.Due,
		&card.Reps,
		&card.ElapsedDays,
		&card.ScheduledDays,
		&card.Stability,
		&card.DifficultyRating,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.Tier = domain.DifficultyTier(tier)
	card.State = domain.CardState(state)
	return &card, nil
}
