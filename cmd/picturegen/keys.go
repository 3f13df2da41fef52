package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-picturegroup/pkg/settings"
)

func newKeysCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the settings keys of the selected theme's breakpoints",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withEnv(opts, func(ctx context.Context, cmd *cobra.Command, e *env, _ []string) error {
		selection, err := e.site.Select(opts.theme, opts.variant)
		if err != nil {
			return err
		}
		bps, err := e.site.Breakpoints.BreakpointsByGroup(ctx, selection.Theme)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tBREAKPOINT\tMULTIPLIER\tMEDIA")
		for _, bp := range bps {
			for _, mult := range bp.Multipliers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", settings.Key(bp.ID, mult), bp.ID, mult, bp.MediaQuery)
			}
		}
		fmt.Fprintf(w, "%s\t-\t-\t-\n", settings.FallbackKey)
		return w.Flush()
	})
	return cmd
}
