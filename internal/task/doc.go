// Package task implements in-memory background task processing: a
// bounded queue drained by a small worker pool. Its one job today is
// running article extractions off the request path.
package task
