// Package cardset implements the pure set operations on a user's
// flashcard collection: last-write-wins merge for multi-device sync,
// duplicate-gated acceptance of candidate words, and due-card queries.
// Every operation is side-effect free; persistence and transport are
// collaborator concerns.
package cardset
