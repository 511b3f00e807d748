// Package server wires the HTTP layer: middleware chain, routes, and
// the handlers that translate between Fiber and the service layer.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusmarket/internal/bootstrap"
	"campusmarket/internal/config"
	"campusmarket/internal/middleware"
	"campusmarket/internal/models"
	"campusmarket/internal/service"
	"campusmarket/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Server holds application dependencies and exposes route setup.
type Server struct {
	config         *config.Config
	store          storage.Storage
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	users     *service.UserService
	listings  *service.ListingService
	roommates *service.RoommateService
	messages  *service.MessageService
}

// NewServer creates a server, opening the configured storage backend
// and Redis connection.
func NewServer(cfg *config.Config) (*Server, error) {
	store, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, store, redisClient), nil
}

// NewServerWithDeps creates a server with injected dependencies.
// Tests use this to run against an in-memory store without Redis.
func NewServerWithDeps(cfg *config.Config, store storage.Storage, redisClient *redis.Client) *Server {
	return &Server{
		config:    cfg,
		store:     store,
		redis:     redisClient,
		users:     service.NewUserService(store),
		listings:  service.NewListingService(store),
		roommates: service.NewRoommateService(store),
		messages:  service.NewMessageService(store),
	}
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// SetupMiddleware configures the global middleware chain. Order
// matters: recovery and request IDs come first so every later stage
// can rely on them.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	prom := middleware.InitMetrics("campusmarket-api")
	s.promMiddleware = prom
	app.Use(middleware.MetricsMiddleware(prom))

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(middleware.AuthOptional)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: s.config.AllowedOrigins != "*",
		MaxAge:           86400,
	}))

	// Coarse per-IP limiter; the Redis-backed limiter below guards
	// the expensive auth endpoints specifically.
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		},
	}))
}

// SetupRoutes registers all API routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/monitor", monitor.New())

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "campusmarket-api",
			"status":  "ok",
		})
	})

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(s.redis, 10, time.Minute), s.Register)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, time.Minute), s.Login)

	users := api.Group("/users")
	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
	users.Get("/:userId/listings", s.GetUserListings)
	users.Get("/:userId/roommate", s.GetUserRoommateProfile)
	users.Get("/:userId/messages", s.GetUserMessages)

	listings := api.Group("/listings")
	listings.Get("/", s.BrowseListings)
	listings.Post("/", s.CreateListing)
	listings.Get("/:id", s.GetListing)
	listings.Put("/:id", s.UpdateListing)
	listings.Delete("/:id", s.DeleteListing)

	roommates := api.Group("/roommates")
	roommates.Get("/", s.ListRoommateProfiles)
	roommates.Post("/", s.CreateRoommateProfile)
	roommates.Get("/:id", s.GetRoommateProfile)
	roommates.Put("/:id", s.UpdateRoommateProfile)
	roommates.Delete("/:id", s.DeleteRoommateProfile)

	messages := api.Group("/messages")
	messages.Get("/conversation/:userId1/:userId2", s.GetConversation)
	messages.Post("/", s.SendMessage)
	messages.Patch("/:id/read", s.MarkMessageRead)
}

// HealthCheck reports basic process health.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "campusmarket-api",
	})
}

// LivenessCheck reports that the process is up, without touching
// downstream dependencies.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessCheck verifies that storage and Redis are reachable.
// Redis being down degrades caching but does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	checks := fiber.Map{}
	healthy := true

	if err := s.store.Ping(ctx); err != nil {
		checks["storage"] = "unhealthy"
		healthy = false
	} else {
		checks["storage"] = "healthy"
	}

	if s.redis == nil {
		checks["redis"] = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = "unhealthy"
	} else {
		checks["redis"] = "healthy"
	}

	status := "ready"
	code := fiber.StatusOK
	if !healthy {
		status = "unhealthy"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

// statusForError maps application error codes onto HTTP statuses.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION_ERROR", "CONFLICT":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "NOT_FOUND":
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}
	return models.RespondWithError(c, statusForError(err), appErr)
}

func (s *Server) generateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": "campusmarket-api",
		"aud": "campusmarket",
		"exp": now.Add(24 * time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
