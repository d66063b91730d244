package cmd

import (
	"github.com/spf13/cobra"

	config "task-desk.com/task-desk/internal/configs"
	httpapi "task-desk.com/task-desk/internal/http"
	model "task-desk.com/task-desk/pkg/models"
)

var stubAPICmd = &cobra.Command{
	Use:   "stub-api",
	Short: "Start a local task API",
	Long:  "Starts a self-contained task API backed by sqlite, for development and tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN, &model.User{}, &model.Task{})
		if err != nil {
			return err
		}

		e := httpapi.NewServer(database, httpapi.Options{
			Prefix:    cfg.StubPrefix,
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.SessionTTL(),
			RateLimit: cfg.RateLimit,
		}, log)

		log.WithField("dsn", cfg.DatabaseDSN).Info("starting stub task API")
		return serve(e, cfg.StubURL, cfg.ShutdownTimeout(), log)
	},
}

func init() {
	rootCmd.AddCommand(stubAPICmd)
}
