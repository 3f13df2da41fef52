package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-picturegroup/pkg/formatter"
)

func newSummaryCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [group]",
		Short: "Print the settings summary of a field group",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withEnv(opts, func(ctx context.Context, cmd *cobra.Command, e *env, args []string) error {
		group, err := e.group(args[0])
		if err != nil {
			return err
		}

		lines, err := e.gen.Summary(ctx, opts.adminRequest(group))
		for _, line := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		if err == nil {
			return nil
		}

		var stale *formatter.StaleReferenceError
		if errors.As(err, &stale) {
			return fmt.Errorf("group %s references fields that are no longer image candidates: %w", group.Name, err)
		}
		return err
	})
	return cmd
}
