package server

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"shipping-gateway/internal/core/config"
	"shipping-gateway/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "shipping-gateway/docs/swagger"
)

// healthTimeout bounds each dependency probe on /health.
const healthTimeout = 2 * time.Second

// Pinger is a dependency probed by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
	// deps are probed by /health, keyed by name.
	deps map[string]Pinger
}

type errorResponse struct {
	Message string `json:"message"`
	RayID   string `json:"ray_id,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig, deps map[string]Pinger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "shipping-gateway",
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	s := &Server{
		App:  app,
		cfg:  cfg,
		deps: deps,
	}
	app.Get("/health", s.health)

	return s
}

// Admin returns the route group guarded by the admin API key.
func (s *Server) Admin() fiber.Router {
	expected := sha256.Sum256([]byte(s.cfg.AdminAPIKey))

	return s.App.Group("/admin", keyauth.New(keyauth.Config{
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(c *fiber.Ctx, key string) (bool, error) {
			got := sha256.Sum256([]byte(key))
			if s.cfg.AdminAPIKey != "" && subtle.ConstantTimeCompare(got[:], expected[:]) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.ForRequest(rayID(c)).Warn("Rejected admin request",
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
				Message: "Unauthorized",
				RayID:   rayID(c),
			})
		},
	}))
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}

// health godoc
// @Summary Liveness and dependency check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (s *Server) health(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok"}
	if len(s.deps) > 0 {
		resp.Checks = make(map[string]string, len(s.deps))
	}

	for name, dep := range s.deps {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		err := dep.Ping(ctx)
		cancel()

		if err != nil {
			logger.ForRequest(rayID(c)).Error("Health check failed", zap.String("dependency", name), zap.Error(err))
			resp.Status = "degraded"
			resp.Checks[name] = "unavailable"
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// errorHandler renders errors that escape handlers, e.g. unknown routes.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		logger.ForRequest(rayID(c)).Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(code).JSON(errorResponse{
		Message: message,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}
