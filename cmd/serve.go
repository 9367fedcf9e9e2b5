package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/brogergvhs/sanpid/internal/config"
	"github.com/brogergvhs/sanpid/internal/server"
	"github.com/brogergvhs/sanpid/internal/util"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve articles and illustrations as JSON over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(config.Options{Listen: flagListen})
		if err != nil {
			return err
		}

		if !rt.cfg.Debug {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := &http.Server{
			Addr:              rt.cfg.Listen,
			Handler:           server.NewRouter(rt.scraper, rt.log),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, cancel := util.InterruptContext(cmd.Context(), "")
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			rt.log.Infof("Listening on %s\n", rt.cfg.Listen)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()

		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "address to listen on (default :8080)")
	rootCmd.AddCommand(serveCmd)
}
