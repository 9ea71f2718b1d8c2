/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tieubaoca/docqa-be/handler"
	"github.com/tieubaoca/docqa-be/service"
)

const sweepInterval = time.Minute

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts the server exposing /upload, /ask, /bulk-qa and the /ws question channel`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}
		if cfg.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())
		go a.documents.RunSweeper(ctx, sweepInterval)

		router := handler.NewRouter(handler.RouterConfig{
			QAService:        a.qaService,
			WebSocketService: service.NewWebSocketService(a.qaService),
			MaxUploadBytes:   cfg.Limits.MaxUploadBytes,
		})

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Server shutdown error")
			}
		}()

		log.Info().Str("port", cfg.Port).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("port", "p", "", "port to listen on (overrides config)")
}
