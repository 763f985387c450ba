package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// RequestLogger registra cada petición y deja en el contexto un logger con su request id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.Request(requestID(c))
		c.SetUserContext(reqLog.WithContext(c.UserContext()))
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := reqLog.Info()
		switch {
		case status >= 500:
			ev = reqLog.Error()
		case status >= 400:
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}

// Metrics alimenta los contadores Prometheus con la plantilla de ruta, no la URL concreta.
func Metrics(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.Start()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := ""
		if r := c.Route(); r != nil && r.Path != "/" && r.Path != "" {
			route = r.Path
		}
		m.Observe(c.Method(), route, status, time.Since(start))
		return err
	}
}

// loginLimiter contrato de cache.LoginLimiter.
type loginLimiter interface {
	Allow(ctx context.Context, ip, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

// LoginRateLimit limita intentos de login por IP y por email. Con limiter nil no hace nada.
// Si Redis falla se deja pasar la petición y se registra el error.
func LoginRateLimit(limiter loginLimiter, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		var body struct {
			Email string `json:"email"`
		}
		_ = c.BodyParser(&body)
		allowed, err := limiter.Allow(c.UserContext(), c.IP(), body.Email)
		if err != nil {
			log.Warn().Err(err).Msg("limitador de login no disponible")
			return c.Next()
		}
		if !allowed {
			log.Warn().Str("ip", c.IP()).Msg("login bloqueado por exceso de intentos")
			return fail(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", "demasiados intentos, intente más tarde")
		}
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == fiber.StatusOK {
			if err := limiter.Reset(c.UserContext(), body.Email); err != nil {
				log.Warn().Err(err).Msg("no se pudo reiniciar el contador de login")
			}
		}
		return nil
	}
}
