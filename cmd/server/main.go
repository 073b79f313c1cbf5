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
	"github.com/go-playground/validator/v10"

	"github.com/Ziming-L/wwu-course-navigator/internal/handler"
	"github.com/Ziming-L/wwu-course-navigator/internal/router"
	"github.com/Ziming-L/wwu-course-navigator/internal/service"
	"github.com/Ziming-L/wwu-course-navigator/pkg/config"
	"github.com/Ziming-L/wwu-course-navigator/pkg/export"
	"github.com/Ziming-L/wwu-course-navigator/pkg/logger"
	"github.com/Ziming-L/wwu-course-navigator/pkg/storage"
)

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

	store, err := storage.NewTabStorage(cfg.Server.TempDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init session storage", "error", err)
	}

	metrics := service.NewMetricsService()
	floorplans := service.NewFloorplanService(cfg.Server.BuildingMap, cfg.Server.FloorplanDir, store, metrics, logr)
	schedules := service.NewScheduleService(store, floorplans, export.NewPDFExporter(), metrics, validator.New(), logr)

	r := router.New(router.Deps{
		Config:    cfg,
		Logger:    logr,
		Schedules: handler.NewScheduleHandler(schedules),
		Files:     handler.NewFilesHandler(store, cfg.Server.DataDir),
		Metrics:   metrics,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, MaxHeaderBytes: 1 << 20}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Warnw("shutdown interrupted", "error", err)
	}

	// session data is temporary by contract: sweep everything on the way out
	if err := store.RemoveAll(); err != nil {
		logr.Sugar().Warnw("temp sweep failed", "error", err)
	} else {
		logr.Sugar().Infow("cleaned up temporary data on shutdown")
	}
}
