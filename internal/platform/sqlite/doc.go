// Package sqlite implements the store interfaces with GORM on top of SQLite.
// It backs local development and the service and router tests; Postgres
// remains the production driver.
package sqlite
