// Package migrations embeds the CLI's SQLite schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
