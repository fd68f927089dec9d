package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/skillmap/internal/server"
)

var (
	serveAddr   string
	serveStatic string
)

var serveCmd = &cobra.Command{
	Use:   "serve [data]",
	Short: "Serve a skills document over HTTP",
	Long: `Starts an HTTP server that publishes the skills document at /skills.json
with caching disabled, plus /healthz and optional static files. The
document is re-read on every request.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(os.Stderr, cfg.LogLevel, verbose)

		sc := server.Config{
			Addr:           cfg.Server.Addr,
			Data:           cfg.Server.Data,
			Static:         cfg.Server.Static,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         log,
		}
		if len(args) > 0 {
			sc.Data = args[0]
		}
		if cmd.Flags().Changed("addr") {
			sc.Addr = serveAddr
		}
		if cmd.Flags().Changed("static") {
			sc.Static = serveStatic
		}

		srv := server.New(sc)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "directory of static files to serve at /")
	rootCmd.AddCommand(serveCmd)
}
