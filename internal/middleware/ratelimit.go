package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/log"
	"github.com/AnshRaj112/mercado-seguro-backend/pkg/clientip"
)

const (
	// SubmissionWindow is 10 minutes
	SubmissionWindow = 10 * time.Minute
	// SubmissionMaxRequests is how many questionnaires one client may post per window
	SubmissionMaxRequests = 20
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:respuestas:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked clients
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long a client stays blocked after flooding
	BlockedIPDuration = 1 * time.Hour
)

// SubmissionRateLimit counts submissions per client in Redis so the limit
// holds across instances. A client exceeding the window is blocked for
// BlockedIPDuration. Redis failures let the request through.
func SubmissionRateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := clientip.LimitKey(r)
			blockedKey := BlockedIPKeyPrefix + key

			blocked, err := rdb.Exists(ctx, blockedKey).Result()
			if err != nil {
				log.WithError(err).Warn("rate limit check failed, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if blocked > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(BlockedIPDuration.Seconds())))
				reject(w, r, http.StatusTooManyRequests, "Demasiadas encuestas enviadas. Intente de nuevo más tarde.")
				return
			}

			rateLimitKey := RateLimitKeyPrefix + key
			var count *redis.IntCmd
			_, err = rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				count = pipe.Incr(ctx, rateLimitKey)
				// NX keeps the window fixed and repairs a counter left without a TTL
				pipe.ExpireNX(ctx, rateLimitKey, SubmissionWindow)
				return nil
			})
			if err != nil {
				// If Redis fails, allow the request (fail open)
				log.WithError(err).Warn("rate limit update failed, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			n := count.Val()
			if n > SubmissionMaxRequests {
				if err := rdb.Set(ctx, blockedKey, "1", BlockedIPDuration).Err(); err != nil {
					log.WithError(err).Warn("could not block client")
				}
				log.WithFields(log.Fields{"client": key}).Warn("submission flood, client blocked")
				w.Header().Set("Retry-After", strconv.Itoa(int(BlockedIPDuration.Seconds())))
				reject(w, r, http.StatusTooManyRequests, "Demasiadas encuestas enviadas. Intente de nuevo más tarde.")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(SubmissionMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(SubmissionMaxRequests-n, 10))
			next.ServeHTTP(w, r)
		})
	}
}
