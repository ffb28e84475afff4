package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flicknote/flick/cmd/config"
	"github.com/flicknote/flick/internal/server"
)

// NewServeCmd runs the hosted note store and identity provider.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the note server",
		Long: `Run the reference note server: the remote document store and
identity provider the client talks to in remote mode.

Configuration comes from the environment (or a .env file):
  FLICK_HTTP_ADDR       listen address (default :8080)
  FLICK_DATABASE_URL    Postgres connection string (required)
  FLICK_JWT_SECRET      token signing secret (required)
  FLICK_REAUTH_WINDOW   recent-login window for account deletion (default 30m)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := config.NewLogger()
			log.SetLevel(logrus.InfoLevel)

			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}

			db, err := server.ConnectDB(cfg.DatabaseURL)
			if err != nil {
				return err
			}

			jwtSvc := server.NewJWT(cfg.JWTSecret)
			router := server.NewRouter(cfg, db, jwtSvc)

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Infof("listening on %s", cfg.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
