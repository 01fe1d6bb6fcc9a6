package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/univ-api/api/swagger"
	"github.com/noah-isme/univ-api/internal/handler"
	"github.com/noah-isme/univ-api/internal/repository"
	"github.com/noah-isme/univ-api/internal/router"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/cache"
	"github.com/noah-isme/univ-api/pkg/config"
	"github.com/noah-isme/univ-api/pkg/database"
	"github.com/noah-isme/univ-api/pkg/jobs"
	"github.com/noah-isme/univ-api/pkg/logger"
	"github.com/noah-isme/univ-api/pkg/mail"
	"github.com/noah-isme/univ-api/pkg/ratelimit"
	"github.com/noah-isme/univ-api/pkg/relation"
	"github.com/noah-isme/univ-api/pkg/storage"
	"github.com/noah-isme/univ-api/pkg/validation"
)

// @title University API
// @version 1.0.0
// @description Universities, colleges, departments, programs, courses and their staff.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, falling back to in-process rate limiting", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	metrics := service.NewMetricsService()
	validate := validation.New()

	universities := repository.NewUniversityRepository(db)
	colleges := repository.NewCollegeRepository(db)
	departments := repository.NewDepartmentRepository(db)
	programs := repository.NewProgramRepository(db)
	courses := repository.NewCourseRepository(db)
	adminUnits := repository.NewAdminUnitRepository(db)
	deanships := repository.NewDeanshipRepository(db)
	users := repository.NewUserRepository(db)

	universities.Observe(metrics)
	colleges.Observe(metrics)
	departments.Observe(metrics)
	programs.Observe(metrics)
	courses.Observe(metrics)
	adminUnits.Observe(metrics)
	deanships.Observe(metrics)
	users.Observe(metrics)

	relations := relation.NewSynchronizer(repository.NewRelationStore(db, metrics), logr, metrics)

	dispatcher := mail.NewDispatcher(mail.NewLogSender(cfg.Mail.From, logr), jobs.QueueConfig{
		Workers:    cfg.Mail.WorkerConcurrency,
		MaxRetries: cfg.Mail.WorkerRetries,
		Logger:     logr,
	})
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	files, err := storage.NewFileStore(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare upload storage", zap.Error(err))
	}
	signer := storage.NewSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	authService := service.NewAuthService(users, dispatcher, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		VerifyTokenExpiry:  cfg.JWT.VerifyExpiration,
		ResetTokenExpiry:   cfg.JWT.ResetExpiration,
		Issuer:             "univ-api",
		LinkBase:           cfg.BaseURL + cfg.APIPrefix,
	})
	avatarService := service.NewAvatarService(users, files, signer, service.AvatarConfig{
		MaxFileSize:  cfg.Uploads.MaxFileSizeBytes,
		AllowedMIMEs: cfg.Uploads.AllowedMIMEs,
		DownloadBase: cfg.BaseURL + cfg.APIPrefix + "/files",
	}, logr)

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		if redisClient != nil {
			limiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit", cfg.RateLimit.Requests, cfg.RateLimit.Window)
		} else {
			limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
	}

	probes := map[string]handler.Probe{
		"postgres": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	engine := router.New(router.Options{
		Env:            cfg.Env,
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logr,
		Tokens:         authService,
		Audit:          users,
		Metrics:        metrics,
		Limiter:        limiter,
	}, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, avatarService),
		Users:        handler.NewUserHandler(service.NewUserService(users, relations, validate, logr)),
		Universities: handler.NewUniversityHandler(service.NewUniversityService(universities, validate, logr)),
		Colleges:     handler.NewCollegeHandler(service.NewCollegeService(colleges, departments, validate, logr)),
		Departments:  handler.NewDepartmentHandler(service.NewDepartmentService(departments, relations, validate, logr)),
		Programs:     handler.NewProgramHandler(service.NewProgramService(programs, relations, validate, logr)),
		Courses:      handler.NewCourseHandler(service.NewCourseService(courses, relations, validate, logr)),
		AdminUnits:   handler.NewAdminUnitHandler(service.NewAdminUnitService(adminUnits, validate, logr)),
		Deanships:    handler.NewDeanshipHandler(service.NewDeanshipService(deanships, validate, logr)),
		Ops:          handler.NewMetricsHandler(metrics, probes),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
