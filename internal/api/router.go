package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/peopleops/employee-api/docs"
	"github.com/peopleops/employee-api/internal/api/handler"
	"github.com/peopleops/employee-api/internal/api/middleware"
	"github.com/peopleops/employee-api/internal/core/domain"
	"github.com/peopleops/employee-api/internal/core/service"
	mongodb "github.com/peopleops/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/peopleops/employee-api/internal/infrastructure/db/redis"
	"github.com/peopleops/employee-api/internal/infrastructure/http/handlers"
	"github.com/peopleops/employee-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("employee_api"))

	// --- Dependencies ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authRepo := mongodb.NewAuthRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)
	authService := service.NewAuthService(authRepo, tokenService, throttle, log)
	authHandler := handler.NewAuthHandler(authService)

	seqRepo := mongodb.NewSequenceRepository(db)
	allocator := service.NewIDAllocator(seqRepo, log)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	employeeService := service.NewEmployeeService(employeeRepo, allocator, cfg.MaxPageSize, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService, cfg.DefaultPageSize)

	authGuard := middleware.Auth(tokenService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Employee routes ---
	// Reads are public; mutations require authentication, delete is admin only.
	e.GET("/employees", employeeHandler.List)
	e.GET("/employees/search", employeeHandler.Search)
	e.GET("/employees/stats/salary", employeeHandler.SalaryStats)
	e.GET("/employees/:id", employeeHandler.Get)
	e.POST("/employees", employeeHandler.Create, authGuard, anyRole)
	e.PUT("/employees/:id", employeeHandler.Update, authGuard, anyRole)
	e.DELETE("/employees/:id", employeeHandler.Delete, authGuard, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
