package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/auth"
	"github.com/mamadbah2/leafline/internal/config"
	"github.com/mamadbah2/leafline/internal/repository"
	"github.com/mamadbah2/leafline/internal/repository/memory"
	"github.com/mamadbah2/leafline/internal/repository/mongodb"
	"github.com/mamadbah2/leafline/internal/repository/postgres"
	"github.com/mamadbah2/leafline/internal/server/router"
	"github.com/mamadbah2/leafline/pkg/clients/identity"
	"github.com/mamadbah2/leafline/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	stores, closeStore := openStores(cfg, baseLogger.Named("repo"))
	defer closeStore()

	var identityClient identity.Client
	verifiers := auth.Chain{}
	if cfg.Auth.JWTSecret != "" {
		verifiers = append(verifiers, auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer))
	}
	if cfg.Auth.ServiceURL != "" {
		identityClient = identity.NewClient(cfg.Auth.ServiceURL, cfg.Auth.ServiceTimeout)
		verifiers = append(verifiers, auth.NewRemoteVerifier(identityClient))
		baseLogger.Info("identity service enabled", zap.String("url", cfg.Auth.ServiceURL))
	} else {
		baseLogger.Warn("identity service url missing, account routes disabled")
	}

	engine := router.New(router.Dependencies{
		Stores:   stores,
		Verifier: verifiers,
		Identity: identityClient,
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStores connects the configured backend and returns its stores with a
// matching close function.
func openStores(cfg *config.Config, log *zap.Logger) (*repository.Stores, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Store.Driver {
	case config.DriverMongoDB:
		db, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			log.Fatal("failed to init mongodb store", zap.Error(err))
		}
		return db.NewStores(), func() {
			if err := db.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}

	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return memory.NewStores(), func() {}

	default:
		db, err := postgres.Open(ctx, cfg.Postgres.DSN, log.Named("postgres"))
		if err != nil {
			log.Fatal("failed to init postgres store", zap.Error(err))
		}
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(db); err != nil {
				log.Fatal("failed to migrate postgres schema", zap.Error(err))
			}
			log.Info("postgres schema migrated")
		}
		return postgres.NewStores(db), func() {
			if err := postgres.Close(db); err != nil {
				log.Error("failed to close postgres connection", zap.Error(err))
			}
		}
	}
}
