package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/logicshaper19/palmtrace/pkg/logger"
)

// RequestLogger logs one structured line per request: method, path, status,
// duration and, when authenticated, the company id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		ev := log.Info()
		if err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start))
		if companyID := GetCompanyID(c); companyID != "" {
			ev.Str("company_id", companyID)
		}
		if err != nil {
			ev.Err(err)
		}
		ev.Msg("request")
		return err
	}
}
