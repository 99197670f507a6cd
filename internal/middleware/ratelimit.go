// Package middleware provides the HTTP middleware applied around the
// booking API.  Only the commit endpoint is rate limited; availability
// reads are cheap and must stay fresh.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/QASchoolUSA/QAXP-Booking/internal/config"
)

// NewRateLimiter returns a fixed-window limiter keyed by client IP,
// backed by Redis so the limit holds across server instances.  When the
// limiter is disabled or Redis is unavailable the middleware passes every
// request through: losing rate limiting must never take bookings down
// with it.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			bucket := time.Now().Unix() / int64(window/time.Second)
			key := fmt.Sprintf("%s:ip:%s:%d", cfg.Prefix, ip, bucket)

			ctx := c.Request().Context()
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis being down is not the visitor's problem.
				return next(c)
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, window).Err()
			}

			remaining := int64(cfg.Requests) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprint(cfg.Requests))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprint(remaining))

			if count > int64(cfg.Requests) {
				retry := int(window / time.Second)
				c.Response().Header().Set("Retry-After", fmt.Sprint(retry))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": retry,
				})
			}
			return next(c)
		}
	}
}
