// Package sqlite contains the device-local cache implementation of the
// store.CardStore interface. A client keeps a single-file snapshot of
// one user's card set for offline study; the snapshot is reconciled
// against the server of record through the sync service and the same
// last-write-wins rule applies on both sides.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/store"
)

// CacheStore is a sqlite-backed store.CardStore used as the device-local
// cache. Timestamps are persisted as epoch milliseconds, matching the
// wire shape of sync payloads.
type CacheStore struct {
	db     store.DBTX
	logger *slog.Logger

	// conn is retained only by the root store so Close works; stores
	// derived via WithTxCardStore share the parent's connection.
	conn *sql.DB
}

// Open creates (or opens) the cache database at dsn and ensures the
// schema is up to date. Use ":memory:" for an ephemeral cache.
func Open(dsn string, logger *slog.Logger) (*CacheStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply cache schema: %w", err)
	}

	return &CacheStore{
		db:     db,
		conn:   db,
		logger: logger.With(slog.String("component", "cache_store")),
	}, nil
}

// Close closes the underlying database connection.
func (s *CacheStore) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// DB exposes the underlying connection for store.RunInTransaction.
func (s *CacheStore) DB() *sql.DB {
	return s.conn
}

// Ensure CacheStore implements store.CardStore interface
var _ store.CardStore = (*CacheStore)(nil)

const upsertCacheQuery = `
INSERT INTO flashcards (
	id, user_id, word, pronunciation, meaning, context, tier, source,
	state, due, reps, elapsed_days, scheduled_days, stability,
	difficulty_rating, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	state             = excluded.state,
	due               = excluded.due,
	reps              = excluded.reps,
	elapsed_days      = excluded.elapsed_days,
	scheduled_days    = excluded.scheduled_days,
	stability         = excluded.stability,
	difficulty_rating = excluded.difficulty_rating,
	updated_at        = excluded.updated_at
WHERE excluded.updated_at > flashcards.updated_at`

const selectCacheColumns = `
	id, user_id, word, pronunciation, meaning, context, tier, source,
	state, due, reps, elapsed_days, scheduled_days, stability,
	difficulty_rating, created_at, updated_at`

// UpsertCards implements store.CardStore.UpsertCards with the same
// last-write-wins guard as the server store: a row is only replaced when
// the incoming updated_at is strictly greater.
func (s *CacheStore) UpsertCards(ctx context.Context, cards []*domain.Flashcard) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	for _, card := range cards {
		_, err := s.db.ExecContext(ctx, upsertCacheQuery,
			card.ID.String(),
			card.UserID.String(),
			card.Word,
			card.Pronunciation,
			card.Meaning,
			card.Context,
			string(card.Tier),
			card.Source,
			int(card.State),
			card.Due.UnixMilli(),
			card.Reps,
			card.ElapsedDays,
			card.ScheduledDays,
			card.Stability,
			card.DifficultyRating,
			card.CreatedAt.UnixMilli(),
			card.UpdatedAt.UnixMilli(),
		)
		if err != nil {
			return store.NewStoreError("card", "upsert", "failed to upsert cached card", err)
		}
	}

	return nil
}

// GetByUserID implements store.CardStore.GetByUserID.
func (s *CacheStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	query := `SELECT` + selectCacheColumns + `
		FROM flashcards
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, store.NewStoreError("card", "list", "failed to query cached cards", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "failed to close rows",
				slog.String("error", closeErr.Error()))
		}
	}()

	var cards []*domain.Flashcard
	for rows.Next() {
		card, err := scanCachedCard(rows)
		if err != nil {
			return nil, store.NewStoreError("card", "list", "failed to scan cached card", err)
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
func (s *CacheStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	query := `SELECT` + selectCacheColumns + `
		FROM flashcards
		WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, id.String())

	card, err := scanCachedCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, store.NewStoreError("card", "get", "failed to scan cached card", err)
	}

	return card, nil
}

// WithTxCardStore implements store.CardStore.WithTxCardStore.
func (s *CacheStore) WithTxCardStore(tx *sql.Tx) store.CardStore {
	return &CacheStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCachedCard maps one cache row onto a domain.Flashcard.
func scanCachedCard(row rowScanner) (*domain.Flashcard, error) {
	var (
		card      domain.Flashcard
		id        string
		userID    string
		tier      string
		state     int
		due       int64
		createdAt int64
		updatedAt int64
	)

	err := row.Scan(
		&id,
		&userID,
		&card.Word,
		&card.Pronunciation,
		&card.Meaning,
		&card.Context,
		&tier,
		&card.Source,
		&state,
		&due,
		&card.Reps,
		&card.ElapsedDays,
		&card.ScheduledDays,
		&card.Stability,
		&card.DifficultyRating,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cardID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid card ID %q: %w", id, err)
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID %q: %w", userID, err)
	}

	card.ID = cardID
	card.UserID = ownerID
	card.Tier = domain.DifficultyTier(tier)
	card.State = domain.CardState(state)
	card.Due = time.UnixMilli(due).UTC()
	card.CreatedAt = time.UnixMilli(createdAt).UTC()
	card.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	return &card, nil
}
