// Package migrations embeds the SQL schema so the server runs as a single
// standalone binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
