package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"
	"github.com/AlexZinkM/ezkey-wallet/internal/api"
	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/config"
	"github.com/AlexZinkM/ezkey-wallet/internal/handler"
	"github.com/AlexZinkM/ezkey-wallet/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API on PORT. Swagger UI is served under /swagger/ and
Prometheus metrics under /metrics. Wallet requests are approved by the API
call itself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// The password is needed both to unlock an existing keystore and to
		// encrypt one created through POST /wallet/generate.
		if err := config.PromptForPassword(); err != nil {
			return err
		}
		key, err := unlockKey()
		if err != nil {
			return err
		}

		a, err := newApp(ctx, key, client.AutoApprove)
		if err != nil {
			return err
		}
		defer a.Close()

		sessions := ezkey.NewRegistry()
		defer sessions.CloseAll()

		h, err := handler.NewEzKeyHandler(config.GetWalletFilePath(), a.wallet, a.provider, sessions, logger.Module(log, "handler"))
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + config.GetPort(),
			Handler:           api.SetupRouter(h, logger.Module(log, "http")),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server listening", zap.String("addr", srv.Addr), zap.Bool("unlocked", key != nil))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
