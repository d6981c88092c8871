package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lealre/comments-backend/internal/api"
	"github.com/lealre/comments-backend/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := environment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	db, err := openDB(connectCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	logger.Info("Connected to MongoDB", zap.String("database", db.GetDatabaseName()))

	a := api.NewAPI(db, cfg.RequestTimeout)
	handler := server.NewServer(a, cfg.BasePath, logger)

	return server.ListenAndServe(ctx, cfg.Addr(), handler, cfg.ShutdownTimeout, logger)
}
