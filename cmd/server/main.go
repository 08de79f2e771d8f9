package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/solar-explorer-go/internal/app"
	"github.com/jengzang/solar-explorer-go/internal/config"
	"github.com/jengzang/solar-explorer-go/internal/logger"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg := config.Load()

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logr.Sync()

	if err := cfg.Validate(); err != nil {
		logr.Fatal("invalid configuration", zap.Error(err))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a := app.New(cfg, nil, logr.Logger)
	a.Start(context.Background())

	server := &http.Server{
		Addr:         cfg.Port,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server started", zap.String("port", cfg.Port), zap.String("data_source", cfg.DataSource))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
	logr.Info("server exited gracefully")
}
