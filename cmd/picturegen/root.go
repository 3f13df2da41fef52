package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/formatter"
	"github.com/goliatone/go-picturegroup/pkg/orchestrator"
	"github.com/goliatone/go-picturegroup/pkg/render"
	"github.com/goliatone/go-picturegroup/pkg/renderers/picture"
	"github.com/goliatone/go-picturegroup/pkg/resolver"
	"github.com/goliatone/go-picturegroup/pkg/site"
	"github.com/goliatone/go-picturegroup/pkg/storage/mysql"
)

type cliOptions struct {
	sitePath  string
	theme     string
	variant   string
	logLevel  string
	dsn       string
	templates string
	sanitize  bool

	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{logger: logrus.New()}

	cmd := &cobra.Command{
		Use:   "picturegen",
		Short: "Render field groups as responsive picture elements",
		Long: `picturegen renders a field group of a site entity as a <picture> element,
mapping each breakpoint and pixel density to an image field. It also prints the
settings summary, lists the settings keys of a theme and walks the settings form
interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			opts.logger.SetLevel(level)
			opts.logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.sitePath, "site", "site.yml", "site description file")
	flags.StringVar(&opts.theme, "theme", "", "theme name (defaults to the site theme)")
	flags.StringVar(&opts.variant, "variant", "", "theme variant")
	flags.StringVar(&opts.logLevel, "log-level", "warning", "log level (debug, info, warning, error)")
	flags.StringVar(&opts.dsn, "dsn", "", "MySQL DSN; files and media are loaded from the database when set")
	flags.StringVar(&opts.templates, "templates", "", "template directory replacing the embedded picture templates")
	flags.BoolVar(&opts.sanitize, "sanitize", false, "filter rendered markup through the picture sanitizer")

	cmd.AddCommand(
		newRenderCmd(opts),
		newSummaryCmd(opts),
		newConfigureCmd(opts),
		newKeysCmd(opts),
	)
	return cmd
}

// env is the wiring shared by the subcommands.
type env struct {
	site  *site.Site
	gen   *orchestrator.Orchestrator
	close func() error
}

func (o *cliOptions) env() (*env, error) {
	s, err := site.Load(o.sitePath)
	if err != nil {
		return nil, err
	}
	if s.Breakpoints == nil {
		return nil, errors.New("site declares no breakpoints_dir")
	}

	var (
		files entity.FileLoader  = s
		media entity.MediaLoader = s
	)
	done := func() error { return nil }
	if o.dsn != "" {
		store, err := mysql.Open(o.dsn, s)
		if err != nil {
			return nil, err
		}
		files, media, done = store, store, store.Close
		o.logger.WithField("driver", "mysql").Debug("loading files and media from database")
	}

	res, err := resolver.New(files, media, s.Materializer(), resolver.WithLogger(o.logger))
	if err != nil {
		_ = done()
		return nil, err
	}

	renderer, err := picture.New(o.rendererOptions()...)
	if err != nil {
		_ = done()
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	gen := orchestrator.New(
		orchestrator.WithBreakpoints(s.Breakpoints),
		orchestrator.WithFieldMetadata(s),
		orchestrator.WithResolver(res),
		orchestrator.WithRegistry(registry),
		orchestrator.WithThemeSelector(s),
		orchestrator.WithDefaultTheme(s.DefaultTheme, s.DefaultVariant),
		orchestrator.WithLogger(o.logger),
	)
	return &env{site: s, gen: gen, close: done}, nil
}

func (o *cliOptions) rendererOptions() []picture.Option {
	opts := []picture.Option{
		picture.WithLogger(o.logger),
		picture.WithTemplatesDir(o.templates),
	}
	if o.sanitize {
		opts = append(opts, picture.WithSanitizer(nil))
	}
	return opts
}

func (e *env) group(name string) (formatter.Group, error) {
	group, ok := e.site.Group(name)
	if !ok {
		return formatter.Group{}, fmt.Errorf("unknown field group %q", name)
	}
	return group, nil
}

func (o *cliOptions) adminRequest(group formatter.Group) orchestrator.AdminRequest {
	return orchestrator.AdminRequest{
		Group:        group,
		ThemeName:    o.theme,
		ThemeVariant: o.variant,
	}
}

func withEnv(o *cliOptions, run func(ctx context.Context, cmd *cobra.Command, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := o.env()
		if err != nil {
			return err
		}
		defer e.close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return run(ctx, cmd, e, args)
	}
}
