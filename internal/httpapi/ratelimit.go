package httpapi

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// RateLimitConfig sizes a RateLimiter.
type RateLimitConfig struct {
	Rate  rate.Limit
	Burst int
	// IdleAfter is how long a bucket may go unused before it can be dropped.
	IdleAfter time.Duration
	// MaxKeys is the table size above which idle buckets are pruned.
	MaxKeys int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key.
type RateLimiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewRateLimiter creates a RateLimiter. Zero IdleAfter and MaxKeys fall back
// to ten minutes and 500 keys.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.IdleAfter <= 0 {
		cfg.IdleAfter = 10 * time.Minute
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = 500
	}
	return &RateLimiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Reserve takes a token for key. When none is available it returns false
// and how long the caller should wait; the token is not consumed.
func (l *RateLimiter) Reserve(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.buckets) > l.cfg.MaxKeys {
		cutoff := now.Add(-l.cfg.IdleAfter)
		for k, b := range l.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(l.buckets, k)
			}
		}
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.cfg.Rate, l.cfg.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	res := b.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, l.cfg.IdleAfter
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Len reports how many buckets are held.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// KeyFunc picks the bucket a request draws from.
type KeyFunc func(r *http.Request) string

// ClientKey buckets by remote IP.
func ClientKey(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// GuildKey buckets by the {guildID} route parameter, so writes to one guild
// share a budget whoever sends them. Routes without a guild fall back to
// ClientKey. It must run after routing, e.g. in a route group.
func GuildKey(r *http.Request) string {
	if id := chi.URLParam(r, "guildID"); id != "" {
		return "guild:" + id
	}
	return "client:" + ClientKey(r)
}

// RateLimitMiddleware answers 429 with Retry-After once key's bucket is empty.
func RateLimitMiddleware(limiter *RateLimiter, key KeyFunc, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			ok, wait := limiter.Reserve(k)
			if !ok {
				logger.WarnContext(r.Context(), "Rate limited",
					attr.ExtractCorrelationID(r.Context()),
					attr.String("key", k),
					attr.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				WriteError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
