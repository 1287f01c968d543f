package middleware

import (
	"net/http"
	"strconv"

	"github.com/akinalp/filmorate/pkg"
	"github.com/akinalp/filmorate/pkg/ratelimit"
	log "github.com/sirupsen/logrus"
)

// RateLimit answers 429 with Retry-After once a client IP runs out of tokens.
func RateLimit(limiter *ratelimit.IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ratelimit.ExtractIP(r)
			if !limiter.Allow(ip) {
				retry := limiter.RetryAfterSeconds(ip)
				log.WithFields(log.Fields{
					"component":  "http",
					"ip":         ip,
					"request_id": RequestIDFrom(r.Context()),
				}).Warn("rate limit exceeded")

				w.Header().Set("Retry-After", strconv.Itoa(retry))
				pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "too many requests, retry in "+strconv.Itoa(retry)+" second(s)")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
