// Package testdb provides helpers for Postgres integration tests: it opens
// the database named by DATABASE_URL, applies the embedded migrations once,
// and runs test bodies inside transactions that are always rolled back.
package testdb
