// Package cli defines the cobra command tree for the comments backend.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lealre/comments-backend/internal/config"
	"github.com/lealre/comments-backend/internal/logx"
	"github.com/lealre/comments-backend/internal/mongodb"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "comments",
		Short:         "Comments REST API backed by MongoDB",
		Long:          "Serve the comments API, prepare its MongoDB collection, or convert text between camelCase, kebab-case and dot.case.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newSetupCmd(),
		newCaseCmd(),
	)

	return root
}

// environment loads the configuration and the process logger shared by the
// commands that talk to MongoDB.
func environment() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logx.New(cfg.LogLevel, cfg.DevMode)
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(logger)

	return cfg, logger, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*mongodb.DB, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	return mongodb.NewDB(client, cfg.MongoDB), nil
}

// closeDB disconnects from MongoDB, logging any error.
func closeDB(db *mongodb.DB, logger *zap.Logger) {
	if err := db.Disconnect(context.Background()); err != nil {
		logger.Warn("closing database", zap.Error(err))
	}
}
