package migrations

import "embed"

// FS contains the embedded catalog migrations.
//
//go:embed *.sql
var FS embed.FS
