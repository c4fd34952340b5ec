package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"examhub/backend/metrics"
)

// MetricsMiddleware times every request. The route pattern is used instead
// of the raw path so ids do not explode label cardinality.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		metrics.APIRequestDuration.WithLabelValues(
			path,
			c.Method(),
			strconv.Itoa(c.Response().StatusCode()),
		).Observe(time.Since(start).Seconds())

		return err
	}
}
