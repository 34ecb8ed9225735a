package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guraspy/personalized-workout-api/config"
	"github.com/guraspy/personalized-workout-api/logger"
	"github.com/guraspy/personalized-workout-api/middlewares"
	"github.com/guraspy/personalized-workout-api/routes"
	"github.com/guraspy/personalized-workout-api/services"
	"github.com/guraspy/personalized-workout-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init("development")
		logger.Fatal("loading config", zap.Error(err))
	}
	if err := logger.Init(cfg.Env); err != nil {
		logger.Fatal("initializing logger", zap.Error(err))
	}
	defer logger.Sync()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal("migrating database", zap.Error(err))
	}

	var blacklist services.TokenBlacklist
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("connecting to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		blacklist = services.NewRedisBlacklist(rdb)
		logger.Info("token blacklist backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		gb := services.NewGormBlacklist(db)
		if n, err := gb.Purge(ctx, time.Now()); err != nil {
			logger.Warn("purging expired blacklist entries", zap.Error(err))
		} else if n > 0 {
			logger.Info("purged expired blacklist entries", zap.Int64("count", n))
		}
		blacklist = gb
	}

	var mailer services.Mailer = utils.NopMailer{}
	if cfg.AWS.SESEmail != "" {
		m, err := utils.InitSES(ctx, cfg.AWS.Region, cfg.AWS.SESEmail)
		if err != nil {
			logger.Warn("SES disabled", zap.Error(err))
		} else {
			mailer = m
		}
	}

	var photos services.PhotoUploader
	if cfg.AWS.S3Bucket != "" {
		u, err := utils.InitS3(ctx, cfg.AWS.Region, cfg.AWS.S3Bucket, cfg.AWS.CloudFrontURL)
		if err != nil {
			logger.Warn("progress photo uploads disabled", zap.Error(err))
		} else {
			photos = u
		}
	}

	tokens := utils.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	r := routes.SetupRouter(routes.Deps{
		DB:          db,
		Auth:        services.NewAuthService(db, tokens, blacklist, mailer),
		Exercises:   services.NewExerciseService(db),
		Plans:       services.NewWorkoutPlanService(db),
		Goals:       services.NewGoalService(db),
		Tracking:    services.NewTrackingService(db, photos),
		Progress:    services.NewProgressService(db),
		RateLimiter: middlewares.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
