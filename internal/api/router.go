package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/encontro-app/encontro/docs"
	"github.com/encontro-app/encontro/internal/api/handler"
	"github.com/encontro-app/encontro/internal/api/middleware"
	"github.com/encontro-app/encontro/internal/core/ports"
	"github.com/encontro-app/encontro/internal/core/service"
	mongorepo "github.com/encontro-app/encontro/internal/infrastructure/db/mongo"
	redisinfra "github.com/encontro-app/encontro/internal/infrastructure/db/redis"
	"github.com/encontro-app/encontro/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// ledgerSink is the async writer for wallet audit entries; it must already be
// started by the caller.
func NewRouter(db *mongodriver.Database, rdb *redis.Client, jwtSecret string, ledgerSink ports.LedgerSink) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	log := logger.Get()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("encontro"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	eventRepo := mongorepo.NewEventRepository(db)
	categoryRepo := mongorepo.NewCategoryRepository(db)
	settlementRepo := mongorepo.NewSettlementRepository(db)
	ledgerRepo := mongorepo.NewLedgerRepository(db)
	settlementLock := redisinfra.NewSettlementLock(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	walletService := service.NewWalletService(userRepo, ledgerRepo, ledgerSink, log)
	eventService := service.NewEventService(eventRepo, categoryRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	enrollmentService := service.NewEnrollmentService(userRepo, eventRepo, settlementRepo, settlementLock, ledgerSink, log)
	adminService := service.NewAdminService(userRepo, eventRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	walletHandler := handler.NewWalletHandler(walletService)
	eventHandler := handler.NewEventHandler(eventService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	adminHandler := handler.NewAdminHandler(adminService)

	authMW := middleware.Auth(jwtSecret)
	adminMW := middleware.RequireAdmin()
	completeMW := middleware.RequireCompleteRegistration()

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/profile", authHandler.CompleteProfile, authMW)

	// --- Wallet routes ---
	wallet := e.Group("/v1/wallet", authMW)
	wallet.GET("", walletHandler.Balance)
	wallet.POST("/deposit", walletHandler.Deposit)
	wallet.GET("/history", walletHandler.History)

	// --- Event routes ---
	e.GET("/v1/events", eventHandler.List)
	e.GET("/v1/events/:id", eventHandler.Get)
	e.POST("/v1/events", eventHandler.Create, authMW, completeMW)
	e.PUT("/v1/events/:id", eventHandler.Update, authMW)
	e.DELETE("/v1/events/:id", eventHandler.Delete, authMW)

	// --- Enrollment routes ---
	e.POST("/v1/events/:id/enroll", enrollmentHandler.Enroll, authMW, completeMW)
	e.POST("/v1/events/:id/unenroll", enrollmentHandler.Unenroll, authMW)
	e.PUT("/v1/events/:id/enrollment", enrollmentHandler.Toggle, authMW, completeMW) // legacy toggle

	// --- Category routes ---
	e.GET("/v1/categories", categoryHandler.List)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authMW, adminMW)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/categories", categoryHandler.Create)
	admin.PUT("/categories/:id", categoryHandler.Update)
	admin.DELETE("/categories/:id", categoryHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
