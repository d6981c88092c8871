package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lealre/comments-backend/internal/casing"
)

func newCaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "case <camel|dot|kebab> <text...>",
		Short: "Convert text to camelCase, dot.case or kebab-case",
		Long:  "Convert text to camelCase, dot.case or kebab-case. Multiple arguments are joined with spaces.",
		Example: `  comments case camel "Make-this_cool"   # makeThisCool
  comments case kebab makeThis_cool      # make-this-cool`,
		Args: cobra.MinimumNArgs(2),
		RunE: runCase,
	}
}

func runCase(cmd *cobra.Command, args []string) error {
	converted, err := casing.Convert(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), converted)
	return nil
}
