package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/campus-cinema/internal/config"
)

// NewRateLimiter returns a fixed-window limiter backed by Redis: INCR on a
// per-(client, route, window) key, EXPIRE on first hit. Coarser than a
// token bucket but a single round trip, and the window length caps how
// long a burst can be locked out. Disabled config or missing Redis yields
// a pass-through.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			window := time.Now().Unix() / int64(cfg.Window/time.Second)
			key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, clientKey(c), c.Path(), window)

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis trouble must not take down the API.
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}

			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				retry := int64(cfg.Window/time.Second) - (time.Now().Unix() % int64(cfg.Window/time.Second))
				c.Response().Header().Set("Retry-After", strconv.FormatInt(retry, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": retry,
				})
			}
			return next(c)
		}
	}
}

// clientKey identifies the caller: the authenticated student when known,
// the source IP otherwise.
func clientKey(c echo.Context) string {
	if v := c.Get("student_id"); v != nil {
		return fmt.Sprintf("u%v", v)
	}
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}
