// Package migrations embeds the Spanner DDL applied by cmd/migrate and the
// integration tests.
package migrations

import "embed"

// Spanner holds spanner/*.sql, applied in lexical order.
//
//go:embed spanner/*.sql
var Spanner embed.FS
