// Package migrations holds the schema of the shared postgres cart storage.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
