package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/finance-ledger/internal/api"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/db"
)

var servePort string

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and browser page",
	Long: `Serve the transaction API and the browser page.

Endpoints:
- GET    /              browser page
- GET    /transacoes    list transactions
- POST   /transacoes    create a transaction
- PUT    /transacoes/ID replace a transaction
- DELETE /transacoes/ID delete a transaction
- GET    /saldo         current balance

Example:
  ledger serve
  ledger serve --port 8080`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from PORT or 5000)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadConfig()

	port := cfg.Server.Port
	if servePort != "" {
		port = servePort
	}

	conn := openDatabase(cfg, pathResolver)
	defer conn.Close()

	addr := fmt.Sprintf(":%s", port)
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(db.NewTransactionStore(conn)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting ledger server", "addr", addr, "driver", conn.Dialect().Name())

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError(err, "server error")
	}

	slog.Info("server stopped")
}
