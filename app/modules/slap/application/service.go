package slapservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	guilddomain "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/domain"
	slapdomain "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/domain"
	slapdb "github.com/Black-And-White-Club/guildkeeper/app/modules/slap/infrastructure/repositories"
	"github.com/Black-And-White-Club/guildkeeper/app/shared/apperrors"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/internal/eventbus"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "SlapService"

// SlapService implements the Service interface.
type SlapService struct {
	repo      slapdb.Repository
	logger    *slog.Logger
	metrics   observability.Metrics
	tracer    trace.Tracer
	publisher eventbus.Publisher
}

var _ Service = (*SlapService)(nil)

// NewSlapService creates a new SlapService.
func NewSlapService(
	repo slapdb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	publisher eventbus.Publisher,
) *SlapService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlapService{
		repo:      repo,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		publisher: publisher,
	}
}

// NewSlap appends an entry to the guild's ledger. Identical inputs produce
// distinct entries.
func (s *SlapService) NewSlap(ctx context.Context, slap slapdomain.NewSlap) (*slapdomain.SlapReport, error) {
	return withTelemetry(s, ctx, "NewSlap", slap.GuildID, func(ctx context.Context) (*slapdomain.SlapReport, error) {
		if err := guilddomain.ValidateMessage(slap.Reason); err != nil {
			return nil, fmt.Errorf("guild %s: %w: %w", slap.GuildID, ErrInvalidReason, err)
		}

		row := &slapdb.SlapReport{
			GuildID:  slap.GuildID,
			Sentence: slap.Sentence,
			Offender: slap.Offender,
			Enforcer: slap.Enforcer,
			Reason:   slap.Reason,
		}
		if err := s.repo.Insert(ctx, nil, row); err != nil {
			return nil, apperrors.Store("Insert", err)
		}

		report := toDomain(*row)
		if s.metrics != nil {
			s.metrics.RecordSlapCreated(ctx)
		}
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, slapdomain.SlapCreatedV1, slapdomain.SlapCreatedPayload{Slap: report}); err != nil {
				s.logger.ErrorContext(ctx, "Failed to publish event",
					attr.ExtractCorrelationID(ctx),
					attr.String("topic", slapdomain.SlapCreatedV1),
					attr.Error(err),
				)
			}
		}
		return &report, nil
	})
}

// GuildRecord returns the guild-wide view. It holds no state.
func (s *SlapService) GuildRecord(guildID sharedtypes.GuildID) GuildSlapRecord {
	return GuildSlapRecord{svc: s, guildID: guildID}
}

// MemberRecord returns the view over one offender's entries.
func (s *SlapService) MemberRecord(guildID sharedtypes.GuildID, member sharedtypes.UserID) MemberSlapRecord {
	return MemberSlapRecord{svc: s, guildID: guildID, member: member}
}

func (s *SlapService) CountGuildSlaps(ctx context.Context, guildID sharedtypes.GuildID) (uint64, error) {
	return s.GuildRecord(guildID).Len(ctx)
}

func (s *SlapService) GuildSlaps(ctx context.Context, guildID sharedtypes.GuildID, limit uint64) ([]slapdomain.SlapReport, error) {
	return s.GuildRecord(guildID).Slaps(ctx, limit)
}

func (s *SlapService) Offenders(ctx context.Context, guildID sharedtypes.GuildID, limit uint64) ([]sharedtypes.UserID, error) {
	return s.GuildRecord(guildID).Offenders(ctx, limit)
}

func (s *SlapService) CountMemberSlaps(ctx context.Context, guildID sharedtypes.GuildID, member sharedtypes.UserID) (uint64, error) {
	return s.MemberRecord(guildID, member).Len(ctx)
}

func (s *SlapService) MemberSlaps(ctx context.Context, guildID sharedtypes.GuildID, member sharedtypes.UserID, limit uint64) ([]slapdomain.SlapReport, error) {
	return s.MemberRecord(guildID, member).Slaps(ctx, limit)
}

func toDomain(row slapdb.SlapReport) slapdomain.SlapReport {
	return slapdomain.SlapReport{
		ID:        uint64(row.ID),
		GuildID:   row.GuildID,
		Sentence:  row.Sentence,
		Offender:  row.Offender,
		Enforcer:  row.Enforcer,
		Reason:    row.Reason,
		CreatedAt: row.CreatedAt,
	}
}

func toDomainSlice(rows []slapdb.SlapReport) []slapdomain.SlapReport {
	out := make([]slapdomain.SlapReport, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *SlapService,
	ctx context.Context,
	operationName string,
	guildID sharedtypes.GuildID,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("guild_id", guildID.String()),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.GuildID(guildID),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		level := slog.LevelError
		if isDomainFailure(err) {
			level = slog.LevelWarn
		} else if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		s.logger.Log(ctx, level, "Operation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GuildID(guildID),
			attr.Error(err),
		)
		span.RecordError(err)
		return result, err
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	return result, nil
}
