package guildservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	guilddb "github.com/Black-And-White-Club/guildkeeper/app/modules/guild/infrastructure/repositories"
	"github.com/Black-And-White-Club/guildkeeper/app/shared/apperrors"
	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
	"github.com/Black-And-White-Club/guildkeeper/internal/eventbus"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "GuildService"

// GuildService implements the Service interface.
type GuildService struct {
	repo      guilddb.Repository
	logger    *slog.Logger
	metrics   observability.Metrics
	tracer    trace.Tracer
	db        *bun.DB
	publisher eventbus.Publisher
}

var _ Service = (*GuildService)(nil)

// NewGuildService creates a new GuildService. metrics, tracer, db and
// publisher may be nil.
func NewGuildService(
	repo guilddb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
	publisher eventbus.Publisher,
) *GuildService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuildService{
		repo:      repo,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		publisher: publisher,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *GuildService,
	ctx context.Context,
	operationName string,
	guildID sharedtypes.GuildID,
	op operationFunc[T],
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
		// Domain failures are normal answers; only infrastructure errors count
		// as failed operations.
		if isDomainFailure(err) {
			s.logger.WarnContext(ctx, "Operation returned failure result",
				attr.ExtractCorrelationID(ctx),
				attr.String("operation", operationName),
				attr.GuildID(guildID),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
			}
			return result, err
		}

		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GuildID(guildID),
			attr.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(err)
		return result, err
	}

	s.logger.DebugContext(ctx, "Operation completed successfully",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operationName),
		attr.GuildID(guildID),
	)
	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[T any](
	s *GuildService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result T
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

// publish emits an event after a committed write. Failures are logged and
// never reach the caller.
func (s *GuildService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// mapRepoErr turns repository errors into service errors carrying the
// guild ID.
func mapRepoErr(op string, guildID sharedtypes.GuildID, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, guilddb.ErrNotFound):
		return fmt.Errorf("%w: guild %s", ErrGuildConfigNotFound, guildID)
	case errors.Is(err, guilddb.ErrAlreadyExists):
		return fmt.Errorf("%w: guild %s", ErrGuildConfigAlreadyExists, guildID)
	default:
		return fmt.Errorf("guild %s: %w", guildID, apperrors.Store(op, err))
	}
}
