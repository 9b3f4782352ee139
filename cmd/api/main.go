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
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/config"
	dbpkg "github.com/BruksfildServices01/fieldservice-availability/internal/db"
	"github.com/BruksfildServices01/fieldservice-availability/internal/infra/salesforce"
	"github.com/BruksfildServices01/fieldservice-availability/internal/infra/tokenstore"
	"github.com/BruksfildServices01/fieldservice-availability/internal/logger"
	"github.com/BruksfildServices01/fieldservice-availability/internal/routes"
	"github.com/BruksfildServices01/fieldservice-availability/internal/timezone"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ======================================================
	// AUDIT (optional database)
	// ======================================================
	var (
		db       *gorm.DB
		recorder audit.Recorder = audit.Nop{}
	)
	if cfg.DBUrl != "" {
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			zl.Fatal("database unavailable", zap.Error(err))
		}

		dispatcher := audit.NewDispatcher(audit.New(db), zl)
		defer dispatcher.Close()
		recorder = dispatcher
	} else {
		zl.Info("DATABASE_URL not set, audit persistence disabled")
	}

	// ======================================================
	// CRM SESSION
	// ======================================================
	store, closeStore, err := tokenstore.Open(context.Background(), cfg)
	if err != nil {
		zl.Fatal("token store unavailable", zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	session := salesforce.NewSession(salesforce.Options{
		Config:   cfg.Salesforce,
		Store:    store,
		Location: timezone.Location(cfg.Timezone),
		Logger:   zl.Named("salesforce"),
		Audit:    recorder,
	})

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	if err := routes.RegisterRoutes(r, routes.Deps{
		Config:  cfg,
		DB:      db,
		Gateway: session,
		Audit:   recorder,
		Logger:  zl,
	}); err != nil {
		zl.Fatal("failed to register routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()), zap.String("token_store", cfg.TokenStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown failed", zap.Error(err))
	}
}
