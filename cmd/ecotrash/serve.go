package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/api"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the dashboard gateway",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Listen port (overrides PORT)",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close(context.Background())

			port := e.cfg.Port
			if p := c.String("port"); p != "" {
				port = p
			}

			// Routes answer "loading" until the persisted session is read.
			go e.store.Bootstrap(ctx)

			router := api.NewRouter(api.Deps{
				Log:      logger.Component("http"),
				Sessions: e.store,
				Auth:     e.auth,
				Backend:  e.client,
				Storage:  e.storage,
			})

			errCh := make(chan error, 1)
			go func() {
				e.log.Info().Str("port", port).Str("driver", e.cfg.Session.Driver).Msg("dashboard gateway listening")
				if err := router.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

			e.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return router.Shutdown(shutdownCtx)
		},
	}
}
