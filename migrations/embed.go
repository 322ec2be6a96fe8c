// Package migrations embeds the schema files so integration tests can
// build a database identical to production, partial unique indexes
// included.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
