// Package store provides abstractions for data persistence: the card
// store interface implemented by the postgres (server of record) and
// sqlite (device cache) backends, the shared error taxonomy, and the
// transaction helper.
package store
