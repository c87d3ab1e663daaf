package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-graphql/config"
	_ "github.com/d60-Lab/social-graphql/docs"
	"github.com/d60-Lab/social-graphql/internal/api"
	"github.com/d60-Lab/social-graphql/internal/api/handler"
	"github.com/d60-Lab/social-graphql/internal/gql"
	"github.com/d60-Lab/social-graphql/internal/repository"
	"github.com/d60-Lab/social-graphql/pkg/database"
	"github.com/d60-Lab/social-graphql/pkg/logger"
	"github.com/d60-Lab/social-graphql/pkg/tracing"
)

// @title Social GraphQL API
// @version 1.0
// @description Single-endpoint GraphQL service over users, profiles, posts and subscriptions.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		logger.Fatal("tracing init", zap.Error(err))
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	resolver := gql.NewResolver(
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		repository.NewPostRepository(db),
		repository.NewMemberTypeRepository(db),
		repository.NewSubscriptionRepository(db),
	)
	pipeline, err := gql.NewPipeline(resolver)
	if err != nil {
		logger.Fatal("schema build", zap.Error(err))
	}

	router := api.NewRouter(cfg, handler.NewHandler(pipeline))
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
}
