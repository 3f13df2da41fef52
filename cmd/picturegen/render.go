package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-picturegroup/pkg/orchestrator"
	"github.com/goliatone/go-picturegroup/pkg/render"
)

func newRenderCmd(opts *cliOptions) *cobra.Command {
	var (
		output string
		locale string
	)

	cmd := &cobra.Command{
		Use:   "render [group] [entity]",
		Short: "Render a field group of an entity as a picture element",
		Example: `  picturegen render group_hero node/1 --site site.yml
  picturegen render group_hero node/1 --theme olivero --variant dark -o hero.html`,
		Args: cobra.ExactArgs(2),
	}
	cmd.RunE = withEnv(opts, func(ctx context.Context, cmd *cobra.Command, e *env, args []string) error {
		group, err := e.group(args[0])
		if err != nil {
			return err
		}
		record, ok := e.site.Entity(args[1])
		if !ok {
			return fmt.Errorf("unknown entity %q", args[1])
		}

		html, err := e.gen.Generate(ctx, orchestrator.Request{
			Group:         group,
			Entity:        record,
			ThemeName:     opts.theme,
			ThemeVariant:  opts.variant,
			RenderOptions: render.RenderOptions{Locale: locale},
		})
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", group.Name, err)
		}

		if output != "" {
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			opts.logger.WithField("path", output).Info("picture written")
			return nil
		}
		_, err = cmd.OutOrStdout().Write(html)
		return err
	})

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&locale, "locale", "", "locale passed to the templates")
	return cmd
}
