package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-picturegroup/pkg/formatter"
	"github.com/goliatone/go-picturegroup/pkg/prompt"
	"github.com/goliatone/go-picturegroup/pkg/settings"
)

// newDriver is replaced in tests.
var newDriver = func(*cobra.Command) prompt.Driver {
	return prompt.NewSurveyDriver()
}

func newConfigureCmd(opts *cliOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "configure [group]",
		Short: "Walk the settings form of a field group and print the resulting settings",
		Long: `configure asks for every control of the group's settings form, starting from
the stored settings, and writes the result as YAML suitable for the group's
format_settings.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = withEnv(opts, func(ctx context.Context, cmd *cobra.Command, e *env, args []string) error {
		group, err := e.group(args[0])
		if err != nil {
			return err
		}

		form, err := e.gen.SettingsForm(ctx, opts.adminRequest(group))
		if err != nil {
			return err
		}
		if !hasSelect(form) {
			opts.logger.WithField("group", group.Name).Warn("bundle has no image fields; only base settings are configurable")
		}

		chosen, err := prompt.FillForm(ctx, newDriver(cmd), form)
		if err != nil {
			return err
		}
		if err := form.Validate(chosen); err != nil {
			return err
		}

		merged := group.Settings.Clone()
		if merged == nil {
			merged = settings.Settings{}
		}
		for key, value := range chosen {
			if value == "" {
				delete(merged, key)
				continue
			}
			merged[key] = value
		}

		data, err := settings.EncodeYAML(merged)
		if err != nil {
			return err
		}
		if output != "" {
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write settings: %w", err)
			}
			opts.logger.WithField("path", output).Info("settings written")
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	})

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func hasSelect(form formatter.Form) bool {
	for _, el := range form.Elements {
		if el.Type == formatter.ControlSelect {
			return true
		}
	}
	return false
}
