package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/config"
	"github.com/careerbridge/careerbridge-backend/internal/repository/cache"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimiter implements a per-IP fixed window limit over a shared counter,
// so every instance behind a load balancer sees the same budget.
type RateLimiter struct {
	counter cache.Counter
	limit   int
	window  time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewRateLimiter creates a RateLimiter (e.g., 100 requests per 15 minutes).
// A non-positive window falls back to one minute.
func NewRateLimiter(counter cache.Counter, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		counter: counter,
		limit:   limit,
		window:  window,
		now:     time.Now,
		log:     log.With().Str("component", "rate_limiter").Logger(),
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
// A counter failure lets the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		slot := rl.now().UnixNano() / int64(rl.window)

		count, err := rl.counter.Incr(c.Request.Context(), config.CacheKey.RateLimitKey(ip, slot), rl.window)
		if err != nil {
			rl.log.Warn().Err(err).Str("ip", ip).Msg("Rate limit counter unavailable")
			c.Next()
			return
		}

		remaining := rl.limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(rl.limit) {
			reset := time.Unix(0, (slot+1)*int64(rl.window))
			c.Header("Retry-After", strconv.Itoa(int(time.Until(reset).Seconds())+1))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
