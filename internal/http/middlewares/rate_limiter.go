package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter allows limit requests per client IP in each fixed window.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep = time.Now()
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			key := c.RealIP()

			mu.Lock()
			if now.Sub(lastSweep) > window {
				for k, b := range buckets {
					if now.Sub(b.start) > window {
						delete(buckets, k)
					}
				}
				lastSweep = now
			}

			b, ok := buckets[key]
			if !ok || now.Sub(b.start) > window {
				b = &bucket{start: now}
				buckets[key] = b
			}

			if b.count >= limit {
				retry := window - now.Sub(b.start)
				mu.Unlock()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
