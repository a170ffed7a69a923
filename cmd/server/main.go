// @title         shop auth API
// @version       1.0
// @description   Authentication and identity service for the shop platform: registration, login and stateless session tokens.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Authorization token. Formats supported: "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	// internal imports
	apihttp "github.com/dshop/shop/api/http"
	"github.com/dshop/shop/api/http/handlers"
	"github.com/dshop/shop/api/http/middleware"
	"github.com/dshop/shop/pkg/auth"
	"github.com/dshop/shop/pkg/config"
	"github.com/dshop/shop/pkg/health"
	"github.com/dshop/shop/pkg/health/checkers"
	"github.com/dshop/shop/pkg/logger"
	"github.com/dshop/shop/pkg/metrics"
	"github.com/dshop/shop/pkg/repository/memory"
	pgrepo "github.com/dshop/shop/pkg/repository/postgres"
	"github.com/dshop/shop/pkg/security/jwt"
	"github.com/dshop/shop/pkg/storage/postgres"
	"github.com/dshop/shop/pkg/users"
)

func main() {
	// Load configuration from env/.env; refuses to start on a short
	// JWT secret or an unparseable token lifetime.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	slogger := logger.New(cfg.LogLevel)
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	app := fiber.New()

	// Credential store: PostgreSQL when configured, in-memory otherwise
	// (local development without a database).
	var userRepo auth.UserRepository
	var healthCheckers []health.Checker
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()
		repo, err := pgrepo.NewUserRepository(pool)
		if err != nil {
			log.Fatalf("init user repo: %v", err)
		}
		userRepo = repo
		healthCheckers = append(healthCheckers, checkers.NewPostgresChecker(pool, time.Second))
	} else {
		slogger.Warn("DATABASE_URL not set, using in-memory credential store")
		userRepo = memory.NewUserRepository()
	}

	// Token issuer doubles as the verifier behind the auth middleware.
	tokenIssuer := jwt.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL())

	authUC := auth.NewAuthService(userRepo, auth.NewBcryptHasher(), tokenIssuer, slogger)
	authHandler := handlers.NewAuthHandler(authUC)

	usersUC := users.NewService(userRepo)
	usersHandler := handlers.NewUsersHandler(usersUC)

	// Rate limiting in front of the credential endpoints; Redis-backed
	// fixed window when REDIS_ADDR is set, per-process token bucket otherwise.
	var rateLimitMW fiber.Handler
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		rateLimitMW = middleware.RedisRateLimit(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, time.Minute)
		healthCheckers = append(healthCheckers, checkers.NewRedisChecker(rdb, time.Second))
	} else {
		rateLimitMW = middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	readiness := health.NewService(healthCheckers...)
	healthHandler := handlers.NewHealthHandler(readiness)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(tokenIssuer)

	apihttp.Register(app, authHandler, usersHandler, healthHandler, authMW, jwt.RequireAdmin(), rateLimitMW)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	slogger.Info("HTTP server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
