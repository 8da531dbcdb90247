// Package migrations embeds the versioned schema files applied by the migration runner.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
