package guilddb

import "errors"

var (
	// ErrNotFound is returned when a guild has no config row.
	ErrNotFound = errors.New("guild config not found")

	// ErrAlreadyExists is returned when InsertConfig finds an existing row.
	ErrAlreadyExists = errors.New("guild config already exists")
)
