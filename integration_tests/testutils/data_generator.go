//go:build integration

package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	slapdomain "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/domain"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

// TestDataGenerator creates test data for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator; an explicit seed makes runs
// reproducible.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s)}
}

// snowflake returns an ID in the range Discord uses.
func (g *TestDataGenerator) snowflake() uint64 {
	return g.faker.Uint64()%(1<<62) + 1
}

func (g *TestDataGenerator) GuildID() sharedtypes.GuildID { return sharedtypes.GuildID(g.snowflake()) }
func (g *TestDataGenerator) RoleID() sharedtypes.RoleID   { return sharedtypes.RoleID(g.snowflake()) }
func (g *TestDataGenerator) UserID() sharedtypes.UserID   { return sharedtypes.UserID(g.snowflake()) }
func (g *TestDataGenerator) ChannelID() sharedtypes.ChannelID {
	return sharedtypes.ChannelID(g.snowflake())
}

// Message returns a short valid welcome or goodbye text.
func (g *TestDataGenerator) Message() *string {
	msg := g.faker.Sentence(8)
	return &msg
}

// GenerateGuildConfig returns creation input for a fresh guild.
func (g *TestDataGenerator) GenerateGuildConfig() guilddomain.NewGuildConfig {
	return guilddomain.NewGuildConfig{
		GuildID:        g.GuildID(),
		Advertise:      g.faker.Bool(),
		WelcomeMessage: g.Message(),
		GoodbyeMessage: g.Message(),
	}
}

// GenerateSlap returns a ledger entry for guildID against offender.
func (g *TestDataGenerator) GenerateSlap(guildID sharedtypes.GuildID, offender sharedtypes.UserID) slapdomain.NewSlap {
	enforcer := g.UserID()
	return slapdomain.NewSlap{
		GuildID:  guildID,
		Sentence: g.faker.Uint64(),
		Offender: offender,
		Enforcer: &enforcer,
		Reason:   g.Message(),
	}
}
