package slapservice

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	slapdomain "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/domain"
	slapdb "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/repositories"
	"github.com/Black-And-White-Club/guildkeeper/app/shared/apperrors"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestService(repo slapdb.Repository) *SlapService {
	return NewSlapService(repo, slog.Default(), observability.NoOpMetrics{}, noop.NewTracerProvider().Tracer("test"), nil)
}

func ptrString(s string) *string { return &s }

func seed(t *testing.T, svc *SlapService, guild sharedtypes.GuildID, offenders ...sharedtypes.UserID) []uint64 {
	t.Helper()
	ids := make([]uint64, 0, len(offenders))
	for i, o := range offenders {
		report, err := svc.NewSlap(context.Background(), slapdomain.NewSlap{
			GuildID:  guild,
			Sentence: uint64(i + 1),
			Offender: o,
		})
		require.NoError(t, err)
		ids = append(ids, report.ID)
	}
	return ids
}

func TestToLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   uint64
		want    int
		wantErr bool
	}{
		{name: "zero", limit: 0, want: 0},
		{name: "small", limit: 25, want: 25},
		{name: "max int", limit: math.MaxInt, want: math.MaxInt},
		{name: "max int plus one", limit: math.MaxInt + 1, wantErr: true},
		{name: "max uint64", limit: math.MaxUint64, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToLimit(tt.limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrLimitOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuildSlapRecord_Pagination(t *testing.T) {
	svc := newTestService(withMemoryLedger(NewFakeSlapRepo()))
	ctx := context.Background()
	ids := seed(t, svc, 1, 10, 11, 12, 13, 14)

	first, err := svc.GuildRecord(1).Slaps(ctx, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for i, s := range first {
		assert.Equal(t, ids[i], s.ID)
	}

	all, err := svc.GuildRecord(1).Slaps(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	again, err := svc.GuildRecord(1).Slaps(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first, again, "reads restart from the oldest entry")

	n, err := svc.GuildRecord(1).Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
}

func TestSlaps_ZeroLimitSkipsStore(t *testing.T) {
	fakeRepo := NewFakeSlapRepo()
	svc := newTestService(fakeRepo)
	ctx := context.Background()

	slaps, err := svc.GuildSlaps(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, slaps)

	offenders, err := svc.Offenders(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, offenders)

	memberSlaps, err := svc.MemberSlaps(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Empty(t, memberSlaps)

	assert.Empty(t, fakeRepo.Trace())
}

func TestSlaps_LimitOutOfRange(t *testing.T) {
	fakeRepo := NewFakeSlapRepo()
	svc := newTestService(fakeRepo)
	ctx := context.Background()

	_, err := svc.GuildSlaps(ctx, 1, math.MaxUint64)
	assert.ErrorIs(t, err, apperrors.ErrLimitOutOfRange)
	_, err = svc.Offenders(ctx, 1, math.MaxUint64)
	assert.ErrorIs(t, err, apperrors.ErrLimitOutOfRange)
	_, err = svc.MemberSlaps(ctx, 1, 2, math.MaxUint64)
	assert.ErrorIs(t, err, apperrors.ErrLimitOutOfRange)

	assert.Empty(t, fakeRepo.Trace())
}

func TestMemberSlapRecord_Scoping(t *testing.T) {
	svc := newTestService(withMemoryLedger(NewFakeSlapRepo()))
	ctx := context.Background()
	seed(t, svc, 1, 100, 200, 100, 200, 200)
	seed(t, svc, 2, 100)

	n, err := svc.MemberRecord(1, 100).Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	n, err = svc.CountMemberSlaps(ctx, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	slaps, err := svc.MemberRecord(1, 200).Slaps(ctx, 2)
	require.NoError(t, err)
	require.Len(t, slaps, 2)
	for _, s := range slaps {
		assert.Equal(t, sharedtypes.UserID(200), s.Offender)
		assert.Equal(t, sharedtypes.GuildID(1), s.GuildID)
	}
	assert.Less(t, slaps[0].ID, slaps[1].ID)
}

func TestOffenders_NotDeduplicated(t *testing.T) {
	svc := newTestService(withMemoryLedger(NewFakeSlapRepo()))
	seed(t, svc, 1, 7, 8, 7, 7)

	offenders, err := svc.Offenders(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []sharedtypes.UserID{7, 8, 7, 7}, offenders)
}

func TestNewSlap(t *testing.T) {
	enforcer := sharedtypes.UserID(55)

	tests := []struct {
		name      string
		setupRepo func(*FakeSlapRepo)
		input     slapdomain.NewSlap
		wantErrIs error
		wantTrace []string
	}{
		{
			name:      "stores entry",
			setupRepo: func(f *FakeSlapRepo) { withMemoryLedger(f) },
			input:     slapdomain.NewSlap{GuildID: 1, Sentence: math.MaxUint64, Offender: 2, Enforcer: &enforcer, Reason: ptrString("spam")},
			wantTrace: []string{"Insert"},
		},
		{
			name:      "invalid reason",
			setupRepo: func(f *FakeSlapRepo) {},
			input:     slapdomain.NewSlap{GuildID: 1, Offender: 2, Reason: ptrString(strings.Repeat("r", guilddomain.MaxMessageLength+1))},
			wantErrIs: ErrInvalidReason,
			wantTrace: []string{},
		},
		{
			name: "store failure",
			setupRepo: func(f *FakeSlapRepo) {
				f.InsertFunc = func(ctx context.Context, db bun.IDB, slap *slapdb.SlapReport) error {
					return errors.New("disk full")
				}
			},
			input:     slapdomain.NewSlap{GuildID: 1, Offender: 2},
			wantErrIs: apperrors.ErrStoreFailure,
			wantTrace: []string{"Insert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeSlapRepo()
			tt.setupRepo(fakeRepo)
			svc := newTestService(fakeRepo)

			got, err := svc.NewSlap(context.Background(), tt.input)

			assert.Equal(t, tt.wantTrace, fakeRepo.Trace())
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			assert.False(t, got.CreatedAt.IsZero())
			assert.Equal(t, tt.input.Sentence, got.Sentence)
			assert.Equal(t, tt.input.Enforcer, got.Enforcer)
			assert.Equal(t, tt.input.Reason, got.Reason)
		})
	}
}

func TestNewSlap_DuplicatesAreDistinct(t *testing.T) {
	pub := &FakePublisher{}
	svc := NewSlapService(withMemoryLedger(NewFakeSlapRepo()), slog.Default(), nil, nil, pub)
	in := slapdomain.NewSlap{GuildID: 3, Sentence: 60, Offender: 4}

	a, err := svc.NewSlap(context.Background(), in)
	require.NoError(t, err)
	b, err := svc.NewSlap(context.Background(), in)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []string{slapdomain.SlapCreatedV1, slapdomain.SlapCreatedV1}, pub.topics)
}

func TestLen_StoreFailure(t *testing.T) {
	fakeRepo := NewFakeSlapRepo()
	fakeRepo.CountGuildFunc = func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int, error) {
		return 0, errors.New("gone")
	}
	svc := newTestService(fakeRepo)

	_, err := svc.CountGuildSlaps(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrStoreFailure)
}

func TestExportGuildSlaps(t *testing.T) {
	svc := newTestService(withMemoryLedger(NewFakeSlapRepo()))
	ctx := context.Background()
	seed(t, svc, 1, 10, 11, 12)

	data, err := svc.ExportGuildSlaps(ctx, 1, 2)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "10", rows[1][1])
	assert.Equal(t, "11", rows[2][1])
}

func TestTallyOffenders(t *testing.T) {
	got := TallyOffenders([]sharedtypes.UserID{5, 3, 5, 9, 3, 5})
	assert.Equal(t, []OffenderTally{
		{Offender: 5, Count: 3},
		{Offender: 3, Count: 2},
		{Offender: 9, Count: 1},
	}, got)
}

func TestOffenderChart(t *testing.T) {
	pngMagic := []byte("\x89PNG")

	t.Run("with data", func(t *testing.T) {
		svc := newTestService(withMemoryLedger(NewFakeSlapRepo()))
		seed(t, svc, 1, 10, 11, 10)

		img, err := svc.OffenderChart(context.Background(), 1, 50)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, pngMagic))
	})

	t.Run("empty ledger", func(t *testing.T) {
		svc := newTestService(withMemoryLedger(NewFakeSlapRepo()))

		img, err := svc.OffenderChart(context.Background(), 1, 50)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, pngMagic))
	})
}
