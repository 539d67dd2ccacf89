package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/raidatlas/raidatlas-api/api/swagger"
	"github.com/raidatlas/raidatlas-api/internal/handler"
	"github.com/raidatlas/raidatlas-api/internal/middleware"
	"github.com/raidatlas/raidatlas-api/internal/repository"
	"github.com/raidatlas/raidatlas-api/internal/service"
	"github.com/raidatlas/raidatlas-api/pkg/cache"
	"github.com/raidatlas/raidatlas-api/pkg/config"
	"github.com/raidatlas/raidatlas-api/pkg/database"
	"github.com/raidatlas/raidatlas-api/pkg/jobs"
	"github.com/raidatlas/raidatlas-api/pkg/logger"
	corsmiddleware "github.com/raidatlas/raidatlas-api/pkg/middleware/cors"
	reqidmiddleware "github.com/raidatlas/raidatlas-api/pkg/middleware/requestid"
	"github.com/raidatlas/raidatlas-api/pkg/storage"
)

// @title Raid Atlas API
// @version 1.0.0
// @description Multi-city event schedules, timezone conversion and cross-city timelines
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	// Redis is optional: without it timelines are recomputed per request.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, timeline cache disabled", "error", err)
		redisClient = nil
	}

	cityRepo := repository.NewCityRepository(db)
	eventRepo := repository.NewEventRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	exportRepo := repository.NewExportRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.TimelineCache.TTL, logr,
		cfg.TimelineCache.Enabled && redisClient != nil)
	citySvc := service.NewCityService(cityRepo, cacheSvc, logr)
	eventSvc := service.NewEventService(eventRepo, cacheSvc, logr)
	timelineSvc := service.NewTimelineService(eventRepo, cityRepo, cacheSvc, metricsSvc, cfg.TimelineCache.TTL, logr)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, eventRepo)
	deviceSvc := service.NewDeviceService(deviceRepo, cfg.DeviceToken.Secret, cfg.DeviceToken.Expiration, cfg.DeviceToken.Issuer, logr)

	store, err := storage.NewFileStore(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("export storage unavailable", "error", err)
	}
	signer := storage.NewSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(exportRepo, eventRepo, timelineSvc, store, signer, logr,
		cfg.Exports.Enabled, cfg.APIPrefix+"/exports/download")

	var exportQueue *jobs.Queue
	if cfg.Exports.Enabled {
		exportQueue = jobs.NewQueue("exports", exportSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
		})
		exportSvc.SetQueue(exportQueue)
		exportQueue.Start(ctx)
		defer exportQueue.Stop()

		go func() {
			ticker := time.NewTicker(cfg.Exports.CleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					exportSvc.Sweep(cfg.Exports.SignedURLTTL)
				}
			}
		}()
	}

	cityHandler := handler.NewCityHandler(citySvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	timelineHandler := handler.NewTimelineHandler(timelineSvc)
	deviceHandler := handler.NewDeviceHandler(deviceSvc)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/cities", cityHandler.List)
		api.GET("/cities/:id", cityHandler.Get)

		api.GET("/events", eventHandler.List)
		api.GET("/events/:id", eventHandler.Get)
		api.GET("/events/:id/timeline", timelineHandler.Timeline)
		api.GET("/events/:id/times", timelineHandler.CityTimes)
		api.POST("/events/:id/export", exportHandler.Create)

		api.GET("/exports/:id", exportHandler.Status)
		api.GET("/exports/download", exportHandler.Download)

		api.POST("/devices", deviceHandler.Register)

		favorites := api.Group("/favorites")
		favorites.Use(middleware.DeviceAuth(deviceSvc))
		{
			favorites.GET("", favoriteHandler.List)
			favorites.PUT("/:id", favoriteHandler.Add)
			favorites.DELETE("/:id", favoriteHandler.Remove)
		}

		admin := api.Group("")
		admin.Use(middleware.AdminKey(cfg.Admin.APIKeyHash))
		{
			admin.POST("/cities", cityHandler.Create)
			admin.PUT("/cities/:id", cityHandler.Update)
			admin.DELETE("/cities/:id", cityHandler.Delete)

			admin.POST("/events", eventHandler.Create)
			admin.PUT("/events/:id", eventHandler.Update)
			admin.DELETE("/events/:id", eventHandler.Delete)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown error", "error", err)
	}

	logr.Sugar().Infow("server stopped")
}
