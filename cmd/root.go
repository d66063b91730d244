package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-desk.com/task-desk/internal/client"
	config "task-desk.com/task-desk/internal/configs"
	"task-desk.com/task-desk/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "task-desk",
	Short:         "Personal task manager",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// bootstrap reads .env and the environment and builds the process logger.
func bootstrap() (config.Config, *logrus.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if envErr != nil {
		log.Debug(".env file not found, using environment variables")
	}
	if err != nil {
		return cfg, log, err
	}

	return cfg, log, nil
}

func newAPIClient(cfg config.Config, log logrus.FieldLogger) *client.Client {
	opts := []client.Option{
		client.WithTimeout(cfg.APITimeout()),
		client.WithLogger(log),
	}
	if cfg.APIBreaker {
		opts = append(opts, client.WithBreaker("task-store"))
	}
	return client.New(cfg.APIBaseURL, opts...)
}

// serve runs e on addr until SIGINT or SIGTERM, then shuts it down within
// timeout.
func serve(e *echo.Echo, addr string, timeout time.Duration, log logrus.FieldLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("HTTP server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("HTTP server shut down gracefully")
	return nil
}
