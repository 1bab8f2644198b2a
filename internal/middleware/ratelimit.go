package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/pandukusuma/sendratari-booking/internal/config"
)

// NewFixedWindow returns an Echo middleware implementing a fixed-window
// rate limit over Redis, keyed by client IP and route. It protects the
// wizard's mutation endpoints from hammering; read endpoints are cheap and
// cached, so they stay unlimited. When the limiter is disabled or Redis is
// unavailable the middleware is a pass-through, and Redis errors fail open:
// losing the limiter must never take the wizard down with it.
func NewFixedWindow(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
	}
	// Guard against configs built outside LoadRateLimitConfig: the window
	// number below divides by whole seconds.
	if cfg.Window < time.Second {
		cfg.Window = time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			window := time.Now().Unix() / int64(cfg.Window.Seconds())
			key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), window)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}
			if count > int64(cfg.Limit) {
				ttl, err := rdb.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = cfg.Window
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
