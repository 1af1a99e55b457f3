package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accounthub/account-system/internal/api/handler"
	"github.com/accounthub/account-system/internal/api/middleware"
	"github.com/accounthub/account-system/internal/core/service"
	"github.com/accounthub/account-system/internal/core/token"
	"github.com/accounthub/account-system/internal/infrastructure/config"
	mongostore "github.com/accounthub/account-system/internal/infrastructure/db/mongo"
	redisstore "github.com/accounthub/account-system/internal/infrastructure/db/redis"
	"github.com/accounthub/account-system/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and starts
// the audit dispatcher. ctx bounds the dispatcher workers' lifetime.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	auditRepo := mongostore.NewAuditRepository(db)
	ledger := redisstore.NewRevocationLedger(rdb)
	codec := token.NewCodec(cfg.JWTSecret)

	auditService := service.NewAuditService(auditRepo)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	sessionService := service.NewSessionService(
		userRepo, codec, ledger, dispatcher,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log,
	)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(sessionService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)
	authMiddleware := middleware.Auth(codec, userRepo)

	// --- Session routes ---
	e.POST("/login/", authHandler.Login)
	e.POST("/refresh/", authHandler.Refresh)
	e.POST("/logout/", authHandler.Logout)

	// --- User routes (registration is open, the rest require auth) ---
	e.POST("/users/", userHandler.Create)
	users := e.Group("/users", authMiddleware)
	users.GET("/", userHandler.List)
	users.GET("/:id/", userHandler.Get)
	users.PUT("/:id/", userHandler.Update)
	users.DELETE("/:id/", userHandler.Delete)

	// --- Audit trail (staff only) ---
	audit := e.Group("/auth", authMiddleware, middleware.Staff())
	audit.GET("/events", auditHandler.Recent)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
