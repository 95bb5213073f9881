// Package migrations embeds the SQL schema for the database-backed providers.
package migrations

import "embed"

// FS holds one sub-directory per dialect: sqlite/ and postgres/.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
