package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	accountUseCase "github.com/allisson/bookstore/internal/account/usecase"
	"github.com/allisson/bookstore/internal/app"
	"github.com/allisson/bookstore/internal/config"
)

const shutdownTimeout = 30 * time.Second

// RunServer starts the API server, the metrics server and the mail dispatcher, and
// blocks until SIGINT/SIGTERM or until one of them fails. Any failure stops the others.
//
// When ADMIN_PASSWORD is set the admin account is created before serving. An existing
// admin keeps its password; use the create-admin command to reset it.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	if cfg.AdminPassword != "" {
		accountUseCase, err := container.AccountUseCase()
		if err != nil {
			return fmt.Errorf("failed to initialize account use case: %w", err)
		}
		if err := bootstrapAdmin(ctx, accountUseCase, logger, cfg); err != nil {
			return err
		}
	}

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	dispatcher, err := container.MailDispatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize mail dispatcher: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(gctx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(func() error {
			if err := metricsServer.Start(gctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := dispatcher.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("mail dispatcher error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return g.Wait()
}

// bootstrapAdmin creates the configured admin account when it is missing.
func bootstrapAdmin(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
	cfg *config.Config,
) error {
	input := &accountDomain.CreateAccountInput{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Name:     cfg.AdminUsername,
		Password: cfg.AdminPassword,
		IsAdmin:  true,
	}

	created, err := accountUseCase.EnsureAdmin(ctx, input, false)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}
	if created {
		logger.Info("admin account created", slog.String("username", cfg.AdminUsername))
	}
	return nil
}
