package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"healthcare-booking/pkg/utils"

	"go.uber.org/zap"
)

// Limiter counts attempts per key in a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// RateLimit caps requests per client IP for one endpoint group. When the
// limiter itself fails the request is let through.
func RateLimit(limiter Limiter, name string, limit int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			allowed, retryAfter, err := limiter.Allow(r.Context(), name+":"+ip, limit, window)
			if err != nil {
				logger.Error("Rate limiter unavailable", zap.Error(err), zap.String("limit", name))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("Rate limit exceeded",
					zap.String("limit", name),
					zap.String("ip", ip),
					zap.Duration("retry_after", retryAfter))
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				utils.ResponseTooManyRequests(w, "Too many attempts. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
