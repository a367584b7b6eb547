package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gemlab/assessment-portal/internal/api/handler"
	"github.com/gemlab/assessment-portal/internal/api/middleware"
	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/service"
	mongodb "github.com/gemlab/assessment-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/gemlab/assessment-portal/internal/infrastructure/db/redis"
	"github.com/gemlab/assessment-portal/internal/infrastructure/queue"
	"github.com/gemlab/assessment-portal/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered, and the
// event dispatcher that must be started alongside it.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	assessmentRepo := mongodb.NewAssessmentRepository(db)
	certificateRepo := mongodb.NewCertificateRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	orderService := service.NewOrderService(orderRepo, assessmentRepo, log)
	assessmentService := service.NewAssessmentService(assessmentRepo, orderRepo, dedup, log)
	certificateService := service.NewCertificateService(certificateRepo, assessmentRepo, log)
	dispatcher := queue.NewDispatcher(cfg.EventWorkers, assessmentService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, userRepo, cfg.TokenTTL)
	orderHandler := handler.NewOrderHandler(orderService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, dispatcher)
	certificateHandler := handler.NewCertificateHandler(certificateService)
	userHandler := handler.NewUserHandler(userRepo)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/certificates/verify/:number", certificateHandler.Verify)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authRequired)

	v1.GET("/auth/me", authHandler.Me)
	v1.POST("/auth/logout", authHandler.Logout)

	orders := v1.Group("/orders", middleware.RBAC(
		domain.RoleCustomer, domain.RoleConsultant, domain.RoleManager, domain.RoleAdmin))
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:order_number", orderHandler.Get)
	orders.POST("/:order_number/cancel", orderHandler.Cancel)

	assessments := v1.Group("/assessments", middleware.RBAC(domain.StaffRoles...))
	assessments.GET("", assessmentHandler.List)
	assessments.GET("/:order_number", assessmentHandler.Get)
	assessments.POST("/events", assessmentHandler.Receive)
	assessments.POST("/events/batch", assessmentHandler.ReceiveBatch)
	assessments.POST("/:order_number/assign", assessmentHandler.Assign,
		middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	assessments.POST("/:order_number/approve", assessmentHandler.Approve,
		middleware.RBAC(domain.RoleConsultant, domain.RoleManager, domain.RoleAdmin))

	certificates := v1.Group("/certificates", middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	certificates.POST("", certificateHandler.Issue)
	certificates.GET("/:number", certificateHandler.Get)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.PATCH("/users/:id/active", userHandler.SetActive)

	// --- Browser page routes ---
	// These render the portal shell; access is decided per navigation by the
	// route guard, which redirects instead of returning API errors.
	guard := service.NewRouteGuard(domain.LoginPath, domain.DefaultLandingPath)
	pages := e.Group("", middleware.Guard(guard, domain.DashboardRoutes, cfg.JWTSecret))
	pages.GET("/", portalShell)
	pages.GET("/login", portalShell)
	pages.GET("/register", portalShell)
	pages.GET("/dashboard", portalShell)
	pages.GET("/dashboard/*", portalShell)

	return e, dispatcher
}

// portalShell serves the single-page shell; the client router takes over
// from there.
func portalShell(c echo.Context) error {
	return c.HTML(200, `<!DOCTYPE html><html><head><title>GemLab Portal</title></head><body><div id="root"></div></body></html>`)
}
