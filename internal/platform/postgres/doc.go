// Package postgres contains the PostgreSQL-backed implementation of the
// store interfaces. It is the server of record for card state: the bulk
// upsert enforces last-write-wins on updated_at at the database level so
// concurrent device syncs reconcile correctly even across server
// instances.
package postgres
