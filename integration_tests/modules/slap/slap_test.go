//go:build integration

package slapintegrationtests

import (
	"context"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slapservice "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/application"
	slapdb "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/repositories"
	"github.com/Black-And-White-Club/guildkeeper/app/shared/apperrors"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/integration_tests/testutils"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutils.CleanupShared()
	os.Exit(code)
}

func setupSlapService(t *testing.T) (context.Context, *slapservice.SlapService, *testutils.TestDataGenerator) {
	t.Helper()
	env := testutils.GetTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Reset(ctx))

	svc := slapservice.NewSlapService(
		slapdb.NewRepository(env.DB),
		env.Logger,
		observability.NoOpMetrics{},
		nil,
		env.EventBus,
	)
	return ctx, svc, testutils.NewTestDataGenerator(7)
}

func TestNewSlap_AppendsInOrder(t *testing.T) {
	ctx, svc, gen := setupSlapService(t)
	gid := gen.GuildID()
	offenders := []sharedtypes.UserID{3, 1, 3}

	var ids []uint64
	for _, offender := range offenders {
		report, err := svc.NewSlap(ctx, gen.GenerateSlap(gid, offender))
		require.NoError(t, err)
		ids = append(ids, report.ID)
	}
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	count, err := svc.CountGuildSlaps(ctx, gid)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	slaps, err := svc.GuildSlaps(ctx, gid, 2)
	require.NoError(t, err)
	require.Len(t, slaps, 2)
	assert.Equal(t, ids[0], slaps[0].ID)
	assert.Equal(t, ids[1], slaps[1].ID)

	got, err := svc.Offenders(ctx, gid, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, offenders, got)

	memberCount, err := svc.CountMemberSlaps(ctx, gid, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), memberCount)

	memberSlaps, err := svc.MemberSlaps(ctx, gid, 3, 10)
	require.NoError(t, err)
	require.Len(t, memberSlaps, 2)
	assert.Equal(t, ids[0], memberSlaps[0].ID)
	assert.Equal(t, ids[2], memberSlaps[1].ID)
}

func TestNewSlap_PreservesFields(t *testing.T) {
	ctx, svc, gen := setupSlapService(t)
	gid := sharedtypes.GuildID(math.MaxUint64)
	input := gen.GenerateSlap(gid, math.MaxUint64)
	input.Sentence = math.MaxUint64
	input.Enforcer = nil

	_, err := svc.NewSlap(ctx, input)
	require.NoError(t, err)

	slaps, err := svc.GuildSlaps(ctx, gid, 1)
	require.NoError(t, err)
	require.Len(t, slaps, 1)
	assert.Equal(t, uint64(math.MaxUint64), slaps[0].Sentence)
	assert.Equal(t, sharedtypes.UserID(math.MaxUint64), slaps[0].Offender)
	assert.Nil(t, slaps[0].Enforcer)
	assert.Equal(t, input.Reason, slaps[0].Reason)
}

func TestNewSlap_RejectsInvalidReason(t *testing.T) {
	ctx, svc, gen := setupSlapService(t)
	gid := gen.GuildID()
	input := gen.GenerateSlap(gid, 1)
	long := strings.Repeat("x", 2001)
	input.Reason = &long

	_, err := svc.NewSlap(ctx, input)
	require.ErrorIs(t, err, slapservice.ErrInvalidReason)

	count, err := svc.CountGuildSlaps(ctx, gid)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLedger_Limits(t *testing.T) {
	ctx, svc, gen := setupSlapService(t)
	gid := gen.GuildID()
	_, err := svc.NewSlap(ctx, gen.GenerateSlap(gid, 1))
	require.NoError(t, err)

	slaps, err := svc.GuildSlaps(ctx, gid, 0)
	require.NoError(t, err)
	assert.Empty(t, slaps)

	_, err = svc.GuildSlaps(ctx, gid, math.MaxUint64)
	assert.ErrorIs(t, err, apperrors.ErrLimitOutOfRange)

	other, err := svc.GuildSlaps(ctx, gen.GuildID(), 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLedger_ExportAndChart(t *testing.T) {
	ctx, svc, gen := setupSlapService(t)
	gid := gen.GuildID()
	for _, offender := range []sharedtypes.UserID{1, 2, 1} {
		_, err := svc.NewSlap(ctx, gen.GenerateSlap(gid, offender))
		require.NoError(t, err)
	}

	xlsx, err := svc.ExportGuildSlaps(ctx, gid, 10)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(xlsx), "PK"), "xlsx is a zip archive")

	png, err := svc.OffenderChart(ctx, gid, 10)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))
}
