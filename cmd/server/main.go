package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/scanmark/attendance-api/api/swagger"
	"github.com/scanmark/attendance-api/internal/handler"
	"github.com/scanmark/attendance-api/internal/middleware"
	"github.com/scanmark/attendance-api/internal/repository"
	"github.com/scanmark/attendance-api/internal/service"
	"github.com/scanmark/attendance-api/pkg/cache"
	"github.com/scanmark/attendance-api/pkg/config"
	"github.com/scanmark/attendance-api/pkg/database"
	"github.com/scanmark/attendance-api/pkg/logger"
	corsmiddleware "github.com/scanmark/attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/scanmark/attendance-api/pkg/middleware/requestid"
	"github.com/scanmark/attendance-api/pkg/qrcode"
	"github.com/scanmark/attendance-api/pkg/storage"
)

// @title Scanmark Attendance API
// @version 0.1.0
// @description QR-code attendance tracking: roster ingestion, scan recording, reports
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.EnsureSchema(db); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	uploads, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload directory", "error", err)
	}

	qrGen, err := qrcode.NewGenerator(cfg.QRDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare qr directory", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	// Redis is optional. The dashboard falls back to direct queries when the
	// cache is disabled or unreachable.
	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	rosterSvc := service.NewRosterService(studentRepo, qrGen, logr, service.RosterServiceConfig{MaxRows: cfg.Upload.MaxRows})
	attendanceSvc := service.NewAttendanceService(studentRepo, attendanceRepo, logr)
	archiveSvc := service.NewArchiveService(studentRepo, qrGen, logr)
	dashboardSvc := service.NewDashboardService(studentRepo, attendanceRepo, cacheSvc, logr, cfg.Dashboard.CacheTTL)
	authSvc := service.NewAuthService(cfg.Admin, cfg.Session, validate, logr)
	adminSvc := service.NewAdminService(attendanceRepo, studentRepo, logr)
	exportSvc := service.NewExportService(attendanceRepo)

	pages := handler.NewPageHandler(dashboardSvc, rosterSvc, attendanceSvc, authSvc)
	students := handler.NewStudentHandler(rosterSvc, archiveSvc, dashboardSvc, uploads, cfg.Upload.MaxBytes, logr)
	attendance := handler.NewAttendanceHandler(attendanceSvc, dashboardSvc)
	admin := handler.NewAdminHandler(authSvc, adminSvc, dashboardSvc, logr)
	reports := handler.NewReportHandler(exportSvc)
	metrics := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.MaxMultipartMemory = cfg.Upload.MaxBytes

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	r.GET("/", pages.Home)
	r.GET("/students", pages.Students)
	r.GET("/reports", pages.Reports)
	r.GET("/scanner", pages.Scanner)
	r.GET("/admin", pages.Admin)

	r.POST("/students/upload", students.Upload)
	r.GET("/students/:reg_no/qr", students.QRImage)
	r.GET("/qrcodes/download", students.DownloadArchive)

	r.POST("/attendance/mark", attendance.Mark)
	r.GET("/reports/export", reports.Export)

	r.POST("/admin/login", admin.Login)
	r.POST("/admin/logout", admin.Logout)
	r.POST("/admin/delete", middleware.AdminRequired(authSvc), admin.Delete)

	r.GET("/health", metrics.Health)
	r.GET("/ready", metrics.Ready)
	r.GET("/metrics", metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
