package guilddomain

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Privilege is a named permission that can be assigned to a role.
// Privileges are flat: none implies another.
type Privilege uint8

const (
	PrivilegeAdmin Privilege = iota
	PrivilegeManager
	PrivilegeEvent
)

// ErrUnrecognizedPrivilege matches every UnrecognizedPrivilegeError.
var ErrUnrecognizedPrivilege = errors.New("unrecognized privilege")

// UnrecognizedPrivilegeError carries the token that failed to parse.
type UnrecognizedPrivilegeError struct {
	Text string
}

func (e *UnrecognizedPrivilegeError) Error() string {
	return fmt.Sprintf("unrecognized privilege %q", e.Text)
}

func (e *UnrecognizedPrivilegeError) Is(target error) bool {
	return target == ErrUnrecognizedPrivilege
}

var privilegeTokens = [...]string{
	PrivilegeAdmin:   "admin",
	PrivilegeManager: "manager",
	PrivilegeEvent:   "event",
}

// AllPrivileges returns the closed privilege set in serialization order.
func AllPrivileges() []Privilege {
	return []Privilege{PrivilegeAdmin, PrivilegeManager, PrivilegeEvent}
}

// ParsePrivilege accepts exactly the lowercase tokens "admin", "manager"
// and "event".
func ParsePrivilege(text string) (Privilege, error) {
	for p, token := range privilegeTokens {
		if token == text {
			return Privilege(p), nil
		}
	}
	return 0, &UnrecognizedPrivilegeError{Text: text}
}

// IsValid checks if the privilege is one of the known values.
func (p Privilege) IsValid() bool {
	return int(p) < len(privilegeTokens)
}

// String returns the lowercase token for p.
func (p Privilege) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("Privilege(%d)", uint8(p))
	}
	return privilegeTokens[p]
}

func (p Privilege) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid privilege %d", uint8(p))
	}
	return []byte(privilegeTokens[p]), nil
}

func (p *Privilege) UnmarshalText(text []byte) error {
	parsed, err := ParsePrivilege(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value stores the privilege as its token.
func (p Privilege) Value() (driver.Value, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid privilege %d", uint8(p))
	}
	return privilegeTokens[p], nil
}

func (p *Privilege) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Privilege", src)
	}
}
