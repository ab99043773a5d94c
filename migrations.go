// Package dedupgate holds assets shared by the binaries of the module.
package dedupgate

import "embed"

// Migrations contains the goose SQL migrations of the lookup tables.
//
//go:embed migrations/*.sql
var Migrations embed.FS
