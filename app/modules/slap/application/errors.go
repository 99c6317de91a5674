package slapservice

import (
	"errors"
	"fmt"
	"math"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	"github.com/Black-And-White-Club/guildkeeper/app/shared/apperrors"
)

// ErrInvalidReason is returned for reason text that fails validation. It
// matches guilddomain.ErrInvalidMessage as well.
var ErrInvalidReason = fmt.Errorf("invalid reason: %w", guilddomain.ErrInvalidMessage)

// ToLimit converts a caller's page size to the store's count type. Values
// above math.MaxInt fail with apperrors.ErrLimitOutOfRange instead of
// wrapping; the bound is 2^31-1 or 2^63-1 depending on the platform.
func ToLimit(limit uint64) (int, error) {
	if limit > math.MaxInt {
		return 0, fmt.Errorf("%w: %d exceeds %d", apperrors.ErrLimitOutOfRange, limit, math.MaxInt)
	}
	return int(limit), nil
}

func isDomainFailure(err error) bool {
	return errors.Is(err, apperrors.ErrLimitOutOfRange) ||
		errors.Is(err, guilddomain.ErrInvalidMessage)
}
