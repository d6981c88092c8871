package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lealre/comments-backend/internal/mongodb"
)

var flagResetIndexes bool

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the comments collection and its indexes",
		Args:  cobra.NoArgs,
		RunE:  runSetup,
	}
	cmd.Flags().BoolVar(&flagResetIndexes, "reset-indexes", false, "drop existing comment indexes first")
	return cmd
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, logger, err := environment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	out := cmd.OutOrStdout()

	if flagResetIndexes {
		dropped, err := db.DropCommentIndexes(ctx)
		if err != nil {
			return err
		}
		for _, name := range dropped {
			fmt.Fprintf(out, "Deleted index '%s'\n", name)
		}
	}

	created, err := db.EnsureCommentsCollection(ctx)
	if err != nil {
		return err
	}
	for _, name := range created {
		fmt.Fprintf(out, "Index '%s' ready\n", name)
	}

	fmt.Fprintf(out, "Collection '%s' is set up in database '%s'\n", mongodb.CommentsCollection, db.GetDatabaseName())
	return nil
}
