package server

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/loveawm50-hub/otp-bots.com/internal/service"
)

// Server is the HTTP surface: registration and key verification for the
// chat-bot front end, invoice creation, and the processor's webhook.
type Server struct {
	app      *fiber.App
	orders   *service.OrderService
	verify   *service.VerifyService
	validate *validator.Validate
}

func New(orders *service.OrderService, verify *service.VerifyService) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "otp-bots",
			DisableStartupMessage: true,
		}),
		orders:   orders,
		verify:   verify,
		validate: validator.New(),
	}

	s.app.Use(requestLogger())

	s.app.Post("/api/telegram/register", s.handleRegister)
	s.app.Post("/api/payments/create", s.handleCreatePayment)
	s.app.Post("/api/oxapay/webhook", s.handleWebhook)
	s.app.Post("/api/telegram/verify-key", s.handleVerifyKey)
	s.app.Get("/health", s.handleHealth)

	return s
}

// App exposes the underlying fiber app for Listen and tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		slog.Debug("request processed",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}
