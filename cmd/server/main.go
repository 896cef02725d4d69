package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mmry/internal/auth"
	"mmry/internal/config"
	"mmry/internal/database"
	"mmry/internal/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm/logger"
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; fall back to a default production one.
		zap.Must(zap.NewProduction()).Fatal("invalid configuration", zap.Error(err))
	}

	log, err := newLogger(cfg)
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("invalid LOG_LEVEL", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	gormLevel := logger.Warn
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		gormLevel = logger.Error
	}

	if err := database.InitDB(cfg.DBPath, gormLevel); err != nil {
		log.Fatal("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	log.Info("database connected and migrated", zap.String("path", cfg.DBPath))

	auth.Configure(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	svc := routes.NewServices(log, cfg.UserCacheTTL)
	defer svc.Close()

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: routes.SetupRoutes(svc),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.Port),
			zap.String("user_cache_ttl", cfg.UserCacheTTL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
