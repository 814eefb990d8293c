package model

import "errors"

var (
	// ErrNotFound is returned when an entity is looked up by id (or unique
	// key) and no row matches. Listing operations return empty results
	// instead.
	ErrNotFound = errors.New("data not found")

	// ErrPoolExhausted is returned when no connection (or the write gate)
	// could be acquired within the configured pool timeout.
	ErrPoolExhausted = errors.New("connection pool exhausted")

	// ErrTransactionConflict wraps SQLite busy/locked conditions. The whole
	// transaction may be retried after backoff.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrIntegrityViolation wraps unique and foreign-key constraint
	// failures.
	ErrIntegrityViolation = errors.New("integrity constraint violation")

	// ErrSchemaMigrationFailed aborts startup; the database is left at the
	// previous schema version.
	ErrSchemaMigrationFailed = errors.New("schema migration failed")
)
