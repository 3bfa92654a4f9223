package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/angelmondragon/rentledger-backend/api/responses"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
)

// RateLimiterStore is the counter surface the limiter needs from redis.
type RateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// BookingRateLimitPolicy throttles booking attempts per caller identity.
type BookingRateLimitPolicy struct {
	window time.Duration
	limit  int
}

// NewBookingRateLimitPolicy builds a policy with the supplied window and limit.
func NewBookingRateLimitPolicy(window time.Duration, limit int) BookingRateLimitPolicy {
	return BookingRateLimitPolicy{window: window, limit: limit}
}

func (p BookingRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

func (p BookingRateLimitPolicy) key(identity string) string {
	if identity == "" {
		return ""
	}
	return fmt.Sprintf("rl:identity:booking:%s", identity)
}

// BookingRateLimit enforces a fixed-window counter per authenticated identity.
// Runs after Auth; requests without an identity pass through untouched.
func BookingRateLimit(policy BookingRateLimitPolicy, store RateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key := policy.key(IdentityFromContext(ctx))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			count, err := store.IncrWithTTL(ctx, key, policy.window)
			if err != nil {
				responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if count > int64(policy.limit) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"attempts":       count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "booking.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
