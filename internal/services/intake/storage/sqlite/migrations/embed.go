package migrations

import "embed"

// FS contains embedded SQLite migrations for intake storage.
//
//go:embed *.sql
var FS embed.FS
