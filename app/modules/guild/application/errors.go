package guildservice

import (
	"errors"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
)

var (
	// ErrGuildConfigNotFound indicates a guild configuration does not exist yet.
	ErrGuildConfigNotFound = errors.New("guild config not found")

	// ErrGuildConfigAlreadyExists is returned by CreateGuildConfig when the
	// guild is already configured. Nothing is written.
	ErrGuildConfigAlreadyExists = errors.New("guild config already exists")

	// ErrInvalidMessage is returned for welcome or goodbye text that fails
	// validation.
	ErrInvalidMessage = guilddomain.ErrInvalidMessage
)

// isDomainFailure reports errors that are an expected outcome rather than
// an infrastructure fault.
func isDomainFailure(err error) bool {
	return errors.Is(err, ErrGuildConfigNotFound) ||
		errors.Is(err, ErrGuildConfigAlreadyExists) ||
		errors.Is(err, ErrInvalidMessage) ||
		errors.Is(err, guilddomain.ErrUnrecognizedPrivilege)
}
