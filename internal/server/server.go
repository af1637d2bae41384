package server

import (
	"fmt"
	"net/http"
	"time"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	custommiddleware "catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"
	"catalog-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// HealthChecker reports the state of a backing store
type HealthChecker interface {
	Health() map[string]string
}

// Services are the business services the router dispatches to
type Services struct {
	Users      service.UserService
	Categories service.CategoryService
	Products   service.ProductService
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers over db. redisClient may be nil,
// which disables rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB())
	categoryRepo := repository.NewCategoryRepository(db.DB())
	productRepo := repository.NewProductRepository(db.DB())

	// Initialize services
	services := Services{
		Users:      service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessTTL()),
		Categories: service.NewCategoryService(categoryRepo, productRepo),
		Products:   service.NewProductService(productRepo, categoryRepo),
	}

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, services, db, redisClient),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}
}

// NewRouter assembles the middleware chain and mounts every endpoint
func NewRouter(cfg *config.Config, logger *zap.Logger, services Services, health HealthChecker, redisClient *redis.Client) chi.Router {
	router := chi.NewRouter()
	metrics := custommiddleware.NewMetrics(logger)

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.IsDevelopment()))
	router.Use(metrics.Middleware)
	// Authenticate runs before logging so request logs carry the acting user.
	router.Use(custommiddleware.Authenticate(services.Users, logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.ValidationMiddleware(maxBodyBytes, logger))

	router.Get("/health", healthHandler(health))
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	protect := protection(cfg, logger, redisClient)
	links := transport.NewLinks(cfg.Server.BaseURL)

	transport.NewUserHandler(services.Users, logger).RegisterRoutes(router, protect)
	transport.NewCategoryHandler(services.Categories, links, logger).RegisterRoutes(router, protect)
	transport.NewProductHandler(services.Products, links, logger).RegisterRoutes(router, protect)

	return router
}

// protection is the chain guarding mutating routes: authentication first, then the
// per-user rate limit when redis is available.
func protection(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) func(http.Handler) http.Handler {
	requireAuth := custommiddleware.RequireAuthenticated(logger)
	if redisClient == nil {
		return requireAuth
	}

	limit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            time.Duration(cfg.RateLimit.Window) * time.Second,
		KeyPrefix:         "catalog:ratelimit",
	}, logger)

	return func(next http.Handler) http.Handler {
		return requireAuth(limit(next))
	}
}

func healthHandler(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := health.Health()

		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, stats)
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
