package sharedtypes

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// GuildID identifies a guild (tenant). IDs are opaque snowflakes.
type GuildID uint64

// RoleID identifies a role within a guild.
type RoleID uint64

// UserID identifies a guild member.
type UserID uint64

// ChannelID identifies a channel within a guild.
type ChannelID uint64

// IDs are stored as decimal text so the full unsigned range survives a
// signed bigint column.

func (id GuildID) String() string   { return strconv.FormatUint(uint64(id), 10) }
func (id RoleID) String() string    { return strconv.FormatUint(uint64(id), 10) }
func (id UserID) String() string    { return strconv.FormatUint(uint64(id), 10) }
func (id ChannelID) String() string { return strconv.FormatUint(uint64(id), 10) }

func (id GuildID) Value() (driver.Value, error)   { return id.String(), nil }
func (id RoleID) Value() (driver.Value, error)    { return id.String(), nil }
func (id UserID) Value() (driver.Value, error)    { return id.String(), nil }
func (id ChannelID) Value() (driver.Value, error) { return id.String(), nil }

func (id *GuildID) Scan(src any) error {
	v, err := scanUint64(src)
	*id = GuildID(v)
	return err
}

func (id *RoleID) Scan(src any) error {
	v, err := scanUint64(src)
	*id = RoleID(v)
	return err
}

func (id *UserID) Scan(src any) error {
	v, err := scanUint64(src)
	*id = UserID(v)
	return err
}

func (id *ChannelID) Scan(src any) error {
	v, err := scanUint64(src)
	*id = ChannelID(v)
	return err
}

// ParseGuildID parses a decimal guild ID as found in URLs.
func ParseGuildID(s string) (GuildID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return GuildID(v), err
}

// ParseRoleID parses a decimal role ID.
func ParseRoleID(s string) (RoleID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return RoleID(v), err
}

// ParseUserID parses a decimal user ID.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return UserID(v), err
}

func scanUint64(src any) (uint64, error) {
	switch v := src.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	case []byte:
		return strconv.ParseUint(string(v), 10, 64)
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("sharedtypes: negative id %d", v)
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	default:
		return 0, fmt.Errorf("sharedtypes: cannot scan %T into id", src)
	}
}
