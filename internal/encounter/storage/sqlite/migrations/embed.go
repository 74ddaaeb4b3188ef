package migrations

import "embed"

// FS contains embedded SQLite migrations for the seed ledger.
//
//go:embed *.sql
var FS embed.FS
