package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-insight/internal/delivery/http"
	"portfolio-insight/internal/repository"
	"portfolio-insight/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the portfolio insight API",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.cache, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo)
	httpHandler := http.NewHttpAPIHandler(ctx, appDep.cfg, appDep.echo, appDep.validator, services)

	// Brokerage tokens expire, re-login periodically so requests after a
	// long idle period do not hit a dead session.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(appDep.cfg.API.SessionRefreshSchedule, func() {
		if err := services.PortfolioService.RefreshSession(ctx); err != nil {
			appDep.log.Error("Scheduled session refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule session refresh: %v", err)
	}
	scheduler.Start()

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	appDep.log.Info("Shutting down gracefully")

	scheduler.Stop()

	if err := apiServer.Stop(); err != nil {
		appDep.log.Error("Failed to stop HTTP server", zap.Error(err))
	}

	logoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo.RobinhoodRepo.Logout(logoutCtx)

	if err := appDep.Close(); err != nil {
		log.Printf("Failed to close app dependency: %v", err)
	}
}
