package router

import (
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/config"
	"github.com/amirda88/gas-cylinder-tracker/internal/handler"
	"github.com/amirda88/gas-cylinder-tracker/internal/middleware"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"
	"github.com/amirda88/gas-cylinder-tracker/internal/repository"
	"github.com/amirda88/gas-cylinder-tracker/internal/service"
	"github.com/amirda88/gas-cylinder-tracker/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	cylinderRepo := repository.NewCylinderRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)
	movementRepo := repository.NewMovementLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	cylinderSvc := service.NewCylinderService(cylinderRepo, historyRepo, movementRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	statusSvc := service.NewStatusService(cylinderRepo, historyRepo, movementRepo, dispatcher)
	reportSvc := service.NewReportService(cylinderRepo)
	dashboardSvc := service.NewDashboardService(cylinderRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	cylindersH := handler.NewCylindersHandler(cylinderSvc, statusSvc)
	labelH := handler.NewLabelHandler(cylinderSvc, rdb)
	reportsH := handler.NewReportsHandler(reportSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	usersH := handler.NewUsersHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// QR label — no auth required, scanners fetch it directly
	r.GET("/v1/cylinders/:barcode/label", labelH.Get)

	// Protected routes — each endpoint declares the capability it needs
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/cylinders", middleware.RequirePermission(model.PermRegister), cylindersH.Register)
		v1.GET("/cylinders", middleware.RequirePermission(model.PermViewAll), cylindersH.List)
		v1.GET("/cylinders/:barcode", middleware.RequirePermission(model.PermViewAll), cylindersH.GetByBarcode)
		v1.GET("/cylinders/:barcode/history", middleware.RequirePermission(model.PermViewAll), cylindersH.History)
		v1.GET("/cylinders/:barcode/movements", middleware.RequirePermission(model.PermViewAll), cylindersH.Movements)
		v1.POST("/cylinders/:barcode/status", middleware.RequirePermission(model.PermRegister), cylindersH.UpdateStatus)
		v1.POST("/cylinders/:barcode/checkout", middleware.RequirePermission(model.PermLogOut), cylindersH.Checkout)
		v1.POST("/cylinders/:barcode/checkin", middleware.RequirePermission(model.PermLogOut), cylindersH.Checkin)
		v1.DELETE("/cylinders/:id", middleware.RequirePermission(model.PermDelete), cylindersH.Delete)

		v1.GET("/dashboard", middleware.RequirePermission(model.PermDashboard), dashboardH.Summary)

		reports := v1.Group("/reports", middleware.RequirePermission(model.PermViewAll))
		{
			reports.GET("/cylinders.csv", reportsH.ExportCSV)
			reports.GET("/cylinders.pdf", reportsH.ExportPDF)
		}

		// User management — admin role only, regardless of permission set
		users := v1.Group("/users", middleware.RequireAdmin())
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
