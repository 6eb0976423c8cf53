package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/katakuxiko/biz-rag-backend/internal/metrics"
)

// jsonBodyLimit режет JSON-маршруты по своему лимиту, общий лимит fiber выше из-за /stt
func jsonBodyLimit(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit > 0 && len(c.Body()) > limit {
			return fail(c, fiber.StatusRequestEntityTooLarge, "Request body too large")
		}
		return c.Next()
	}
}

// requestLogger пишет access-лог и метрики HTTP
func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		d := time.Since(start)

		metrics.ObserveHTTP(c.Method(), c.Route().Path, status, d)
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", d),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("remote_addr", c.IP()),
		)
		return err
	}
}
