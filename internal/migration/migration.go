package migration

import _ "embed"

// Create builds every table. It is safe to run against an existing database.
//
//go:embed create-tables.sql
var Create string
