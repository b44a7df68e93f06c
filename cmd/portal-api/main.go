package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studentaffairs/org-portal-api/api/swagger"
	"github.com/studentaffairs/org-portal-api/internal/handler"
	"github.com/studentaffairs/org-portal-api/internal/middleware"
	"github.com/studentaffairs/org-portal-api/internal/models"
	"github.com/studentaffairs/org-portal-api/internal/repository"
	"github.com/studentaffairs/org-portal-api/internal/service"
	"github.com/studentaffairs/org-portal-api/pkg/cache"
	"github.com/studentaffairs/org-portal-api/pkg/config"
	"github.com/studentaffairs/org-portal-api/pkg/database"
	"github.com/studentaffairs/org-portal-api/pkg/logger"
	corsmiddleware "github.com/studentaffairs/org-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studentaffairs/org-portal-api/pkg/middleware/requestid"
	"github.com/studentaffairs/org-portal-api/pkg/notify"
	"github.com/studentaffairs/org-portal-api/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title Student Organization Portal API
// @version 1.0.0
// @description Event, fundraising and announcement services for student organizations
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	blobs, err := storage.NewLocalBucketStore(cfg.Storage.BaseDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		logr.Sugar().Fatalw("blob store init failed", "error", err)
	}
	if err := blobs.EnsureBucket(cfg.Storage.MediaBucket, true); err != nil {
		logr.Sugar().Fatalw("media bucket init failed", "error", err)
	}
	if err := blobs.EnsureBucket(cfg.Storage.SlipBucket, false); err != nil {
		logr.Sugar().Fatalw("slip bucket init failed", "error", err)
	}

	bus := notify.NewBus()
	var changes notify.Publisher = bus
	if cfg.Pending.RedisNotify {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("redis connection failed", "error", err)
		}
		defer redisClient.Close()
		bridge := notify.NewRedisBridge(redisClient, cfg.Pending.RedisChan, bus, logr)
		defer bridge.Close()
		changes = bridge
	}

	validate := validator.New()

	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	fundraisingRepo := repository.NewFundraisingRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	colorRepo := repository.NewColorRepository(db)
	pendingRepo := repository.NewPendingRepository(db)

	metricsSvc := service.NewMetricsService()

	eventSvc := service.NewEventService(eventRepo, validate, logr, changes)
	registrationSvc := service.NewRegistrationService(registrationRepo, eventRepo, repository.IsUniqueViolation, logr)
	fundraisingSvc := service.NewFundraisingService(fundraisingRepo, validate, logr, changes)
	donationSvc := service.NewDonationService(donationRepo, fundraisingRepo, logr)
	announcementSvc := service.NewAnnouncementService(announcementRepo, validate, logr, changes)
	colorSvc := service.NewColorService(colorRepo)
	exportSvc := service.NewExportService(registrationRepo, eventRepo, logr)
	mediaSvc := service.NewMediaService(blobs, eventRepo, fundraisingRepo, colorRepo, donationRepo, service.MediaServiceConfig{
		MediaBucket: cfg.Storage.MediaBucket,
		SlipBucket:  cfg.Storage.SlipBucket,
	}, logr)
	slipSigner := storage.NewSlipTokenSigner(cfg.Storage.SlipTokenSecret, cfg.Storage.SlipTokenTTL)
	slipSvc := service.NewSlipService(donationRepo, blobs, slipSigner, cfg.Storage.SlipBucket)

	pendingSvc := service.NewPendingService(pendingRepo, bus, cfg.Pending.Workers, logr)
	pendingSvc.SetMetrics(metricsSvc)
	pendingSvc.Start(context.Background())
	defer pendingSvc.Stop()

	eventHandler := handler.NewEventHandler(eventSvc, registrationSvc)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc, exportSvc)
	fundraisingHandler := handler.NewFundraisingHandler(fundraisingSvc)
	donationHandler := handler.NewDonationHandler(donationSvc, slipSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	colorHandler := handler.NewColorHandler(colorSvc)
	dashboardHandler := handler.NewDashboardHandler(pendingSvc)
	uploadHandler := handler.NewUploadHandler(mediaSvc, metricsSvc, cfg.Uploads.MaxFileSizeBytes)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Signed slip downloads live outside the API prefix; the token is the
	// only credential.
	r.GET("/files/slips", donationHandler.DownloadSlip)
	// Public blob serving for the media bucket.
	r.Static("/files/"+cfg.Storage.MediaBucket, blobs.BucketDir(cfg.Storage.MediaBucket))

	secret := cfg.JWT.Secret
	requireStaffRoles := middleware.RequireRoles(models.RoleOrganizer, models.RoleOffice)
	requireOffice := middleware.RequireRoles(models.RoleOffice)

	api := r.Group(cfg.APIPrefix)
	{
		events := api.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)
			events.POST("", middleware.JWT(secret), requireStaffRoles, eventHandler.Create)
			events.PUT("/:id", middleware.JWT(secret), requireStaffRoles, eventHandler.Update)
			events.PUT("/:id/status", middleware.JWT(secret), requireOffice, eventHandler.SetStatus)

			events.POST("/:id/registrations", middleware.OptionalJWT(secret), registrationHandler.Submit)
			events.GET("/:id/registrations", middleware.JWT(secret), requireStaffRoles, registrationHandler.List)
			events.GET("/:id/registrations/export", middleware.JWT(secret), requireStaffRoles, registrationHandler.Export)
			events.GET("/:id/slots", registrationHandler.Slots)

			events.POST("/:id/poster", middleware.JWT(secret), requireStaffRoles, uploadHandler.EventPoster)
			events.POST("/:id/qr", middleware.JWT(secret), requireStaffRoles, uploadHandler.EventQR)
			events.POST("/:id/photos", middleware.JWT(secret), requireStaffRoles, uploadHandler.EventPhotos)
		}

		fundraising := api.Group("/fundraising")
		{
			fundraising.GET("", fundraisingHandler.List)
			fundraising.GET("/:id", fundraisingHandler.Get)
			fundraising.POST("", middleware.JWT(secret), requireStaffRoles, fundraisingHandler.Create)
			fundraising.PUT("/:id/status", middleware.JWT(secret), requireOffice, fundraisingHandler.SetStatus)
			fundraising.POST("/:id/poster", middleware.JWT(secret), requireStaffRoles, uploadHandler.FundraisingPoster)

			fundraising.GET("/:id/donations", donationHandler.List)
			fundraising.POST("/:id/donations", donationHandler.Record)
		}

		donations := api.Group("/donations")
		{
			donations.POST("/:id/slip", uploadHandler.DonationSlip)
			donations.GET("/:id/slip", middleware.JWT(secret), requireOffice, donationHandler.SlipLink)
		}

		announcements := api.Group("/announcements")
		{
			announcements.GET("", announcementHandler.List)
			announcements.POST("", middleware.JWT(secret), requireStaffRoles, announcementHandler.Create)
			announcements.PUT("/:id/status", middleware.JWT(secret), requireOffice, announcementHandler.SetStatus)
		}

		api.GET("/colors", colorHandler.List)
		api.GET("/colors/:id", colorHandler.Get)
		api.POST("/colors/:id/photo", middleware.JWT(secret), requireStaffRoles, uploadHandler.ColorPhoto)
		api.GET("/dashboard/pending-counts", middleware.JWT(secret), requireOffice, dashboardHandler.PendingCounts)
		api.POST("/uploads/:kind", middleware.JWT(secret), requireStaffRoles, uploadHandler.Generic)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
