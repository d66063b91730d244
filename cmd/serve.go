package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	config "task-desk.com/task-desk/internal/configs"
	"task-desk.com/task-desk/internal/session"
	"task-desk.com/task-desk/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front",
	Long:  "Starts the dashboard HTTP server in front of the remote task API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		cookies := session.CookieOptions{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL()}

		var store session.Store
		switch cfg.SessionStore {
		case config.SessionStoreRedis:
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return fmt.Errorf("connecting to redis: %w", err)
			}
			defer redisClient.Close()
			store = session.NewRedisStore(redisClient, cfg.RedisSessionPrefix, cookies)
		default:
			store = session.NewCookieStore(cookies)
		}

		log.WithField("api", cfg.APIBaseURL).WithField("sessions", cfg.SessionStore).Info("starting web front")

		h := web.NewHandler(newAPIClient(cfg, log), store, cfg.SessionTTL(), log)
		return serve(web.NewServer(h, cfg.RateLimit, log), cfg.AppURL, cfg.ShutdownTimeout(), log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
