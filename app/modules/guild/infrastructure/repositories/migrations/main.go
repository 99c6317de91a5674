package guildmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Registered migrations take their IDs from their file names.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
