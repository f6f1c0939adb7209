// Package migrations holds the render cache schema. Store applies the
// NNN_name.up.sql files in name order and records each NNN it ran.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
