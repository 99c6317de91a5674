package guilddomain

import sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"

// Topics published by the guild module.
const (
	GuildConfigCreatedV1    = "guild.config.created"
	GuildConfigUpdatedV1    = "guild.config.updated"
	GuildPrivilegeGrantedV1 = "guild.privilege.granted"
	GuildPrivilegeRevokedV1 = "guild.privilege.revoked"
)

// Topics returns every topic the guild module publishes.
func Topics() []string {
	return []string{
		GuildConfigCreatedV1,
		GuildConfigUpdatedV1,
		GuildPrivilegeGrantedV1,
		GuildPrivilegeRevokedV1,
	}
}

// GuildConfigCreatedPayload is published after a config row is inserted.
type GuildConfigCreatedPayload struct {
	GuildID   sharedtypes.GuildID `json:"guild_id"`
	Advertise bool                `json:"advertise"`
}

// GuildConfigUpdatedPayload names the single field a setter changed.
type GuildConfigUpdatedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Field   string              `json:"field"`
}

// GuildPrivilegePayload is shared by grant and revoke events.
type GuildPrivilegePayload struct {
	GuildID   sharedtypes.GuildID `json:"guild_id"`
	RoleID    sharedtypes.RoleID  `json:"role_id"`
	Privilege Privilege           `json:"privilege"`
}
