package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"madrasa/domain"
	"madrasa/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimiter gates every request through the fixed-window check plus the
// progressive-delay penalty. When both would make the client wait, the larger
// retry-after wins.
func RateLimiter(limiter *service.RateLimitingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/ping" || path == "/health" {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if limiter.IsWhitelisted(ip) {
			c.Next()
			return
		}
		identifier := "ip:" + ip

		result, err := limiter.Check(c.Request.Context(), identifier, path, nil)
		if err != nil {
			// A broken limiter store must not take the API down with it.
			log.Warn().Err(err).Str("identifier", identifier).Msg("rate limit check failed")
			c.Next()
			return
		}

		inDelay, remaining, err := limiter.InProgressiveDelay(c.Request.Context(), identifier)
		if err != nil {
			log.Warn().Err(err).Str("identifier", identifier).Msg("progressive delay check failed")
			inDelay = false
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime.Unix()))

		if !result.Allowed || inDelay {
			retryAfter := result.RetryAfter
			if inDelay {
				if delaySecs := retryAfterSeconds(remaining); delaySecs > retryAfter {
					retryAfter = delaySecs
				}
			}

			e := domain.NewAuthError(domain.ErrRateLimited, map[string]any{"retryAfter": retryAfter})
			log.Warn().
				Str("identifier", identifier).
				Str("path", path).
				Int("retry_after", retryAfter).
				Msg("request rate limited")

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"error":       e.Message,
				"error_ar":    e.MessageAr,
				"code":        e.Code,
				"retry_after": retryAfter,
			})
			c.Abort()
			return
		}

		c.Next()

		// Refunds only apply to endpoints configured to skip one outcome.
		status := c.Writer.Status()
		ctx := c.Request.Context()
		if status < http.StatusBadRequest {
			if err := limiter.RecordSuccess(ctx, identifier, path); err != nil {
				log.Debug().Err(err).Msg("rate limit success refund failed")
			}
		} else {
			if err := limiter.RecordFailure(ctx, identifier, path); err != nil {
				log.Debug().Err(err).Msg("rate limit failure refund failed")
			}
		}
	}
}

// retryAfterSeconds rounds a duration up to whole seconds, minimum one.
func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
