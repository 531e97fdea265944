// Package migrations embeds the Postgres schema for the remote document
// store and its auth tables.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
