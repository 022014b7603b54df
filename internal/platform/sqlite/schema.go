package sqlite

// schema creates the local cache tables. The shape mirrors the server's
// flashcards table so records round-trip between cache and server
// without translation.
const schema = `
CREATE TABLE IF NOT EXISTS flashcards (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	word TEXT NOT NULL,
	pronunciation TEXT NOT NULL DEFAULT '',
	meaning TEXT NOT NULL DEFAULT '',
	context TEXT NOT NULL DEFAULT '',
	tier TEXT NOT NULL DEFAULT 'C1',
	source TEXT NOT NULL DEFAULT '',
	state INTEGER NOT NULL DEFAULT 0,
	due INTEGER NOT NULL,
	reps INTEGER NOT NULL DEFAULT 0,
	elapsed_days INTEGER NOT NULL DEFAULT 0,
	scheduled_days INTEGER NOT NULL DEFAULT 0,
	stability REAL NOT NULL DEFAULT 0,
	difficulty_rating REAL NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS flashcards_user_word_idx
	ON flashcards (user_id, lower(word));

CREATE INDEX IF NOT EXISTS flashcards_user_due_idx
	ON flashcards (user_id, due);
`
