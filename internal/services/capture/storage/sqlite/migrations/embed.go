package migrations

import "embed"

// FS contains embedded SQLite migrations for the level catalog.
//
//go:embed *.sql
var FS embed.FS
