package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger emits one structured line per request. Errors are logged
// here with the handler's error attached; the app error handler still
// shapes the response body afterwards.
func RequestLogger(logger *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"ip", c.IP(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case err != nil:
			logger.Errorw("request failed", append(fields, "error", err)...)
		case c.Response().StatusCode() >= fiber.StatusInternalServerError:
			logger.Errorw("request failed", fields...)
		default:
			logger.Infow("request handled", fields...)
		}
		return err
	}
}
