package guilddomain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the chat platform's per-message ceiling, in runes.
const MaxMessageLength = 2000

// ErrInvalidMessage is returned for text that cannot be posted.
var ErrInvalidMessage = errors.New("invalid message")

// ValidateMessage checks free text (welcome, goodbye, slap reason).
// A nil message is always valid; so is the empty string.
func ValidateMessage(msg *string) error {
	if msg == nil {
		return nil
	}
	s := *msg
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidMessage)
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%w: contains NUL byte", ErrInvalidMessage)
	}
	if n := utf8.RuneCountInString(s); n > MaxMessageLength {
		return fmt.Errorf("%w: %d characters exceeds limit of %d", ErrInvalidMessage, n, MaxMessageLength)
	}
	return nil
}
