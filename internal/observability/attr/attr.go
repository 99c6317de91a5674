// Package attr provides the slog attributes used across services.
package attr

import (
	"context"
	"log/slog"

	sharedtypes "github.com/Black-And-White-Club/guildkeeper/app/types/shared"
)

type correlationKey struct{}

// WithCorrelationID stores the request correlation ID on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFrom returns the correlation ID stored on ctx, if any.
func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// ExtractCorrelationID returns the correlation ID of ctx as a log attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationIDFrom(ctx))
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Uint64(key string, value uint64) slog.Attr { return slog.Uint64(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func GuildID(id sharedtypes.GuildID) slog.Attr { return slog.String("guild_id", id.String()) }

func RoleID(id sharedtypes.RoleID) slog.Attr { return slog.String("role_id", id.String()) }

func UserID(id sharedtypes.UserID) slog.Attr { return slog.String("user_id", id.String()) }
