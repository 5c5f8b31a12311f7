// Package migrations embeds the goose SQL migrations for the Postgres schema.
package migrations

import "embed"

// FS holds every migration file. Goose reads it with SetBaseFS and dir ".".
//
//go:embed *.sql
var FS embed.FS
