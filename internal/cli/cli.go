// Package cli wires the dsinit command line onto the scaffold service.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dpshade/dsinit/internal/config"
	"github.com/dpshade/dsinit/internal/errors"
	"github.com/dpshade/dsinit/internal/fs"
	"github.com/dpshade/dsinit/internal/logging"
	"github.com/dpshade/dsinit/internal/prompt"
	"github.com/dpshade/dsinit/internal/renderer"
	"github.com/dpshade/dsinit/internal/service"
	"github.com/dpshade/dsinit/internal/ui"
)

// Version is printed by --version
var Version = "0.1.0"

type options struct {
	answers     string
	configPath  string
	tui         bool
	verbose     bool
	quiet       bool
	printConfig bool
}

// Execute runs the root command with ctx, reports any error on stderr and
// returns the process exit code.
func Execute(ctx context.Context) int {
	return executeRoot(ctx, NewRoot())
}

func executeRoot(ctx context.Context, root *cobra.Command) int {
	err := root.ExecuteContext(ctx)
	if err != nil {
		verbose, _ := root.Flags().GetBool("verbose")
		stderr := root.ErrOrStderr()
		handler := errors.NewCLIErrorHandler(verbose, logging.New(stderr, slog.LevelWarn))
		handler.HandleError(stderr, err)
	}
	return errors.ExitCode(err)
}

// NewRoot builds the dsinit command. svcOpts are passed to the scaffold service.
func NewRoot(svcOpts ...service.Option) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "dsinit [BASE_DIR]",
		Short: "Scaffold a data-science project directory",
		Long: `dsinit asks for a directory name, project name, author and tags, then
creates the standard project layout under BASE_DIR (default ".") and writes
its info.json. Existing files are never overwritten, except info.json.`,
		Version:       Version,
		Args:          maxArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, ResolveBase(args), opts, svcOpts)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.UsageError(err.Error())
	})

	flags := root.Flags()
	flags.StringVar(&opts.answers, "answers", "", "read answers from a YAML file instead of prompting")
	flags.BoolVar(&opts.tui, "tui", false, "collect answers with an interactive form")
	flags.StringVar(&opts.configPath, "config", "", "settings file (default $"+config.EnvConfigPath+" or the user config dir)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")
	flags.BoolVar(&opts.printConfig, "print-config", false, "print a default settings file and exit")

	return root
}

// ResolveBase returns the base directory named on the command line, or ".".
func ResolveBase(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return errors.UsageError(err.Error())
		}
		return nil
	}
}

func run(cmd *cobra.Command, base string, opts options, svcOpts []service.Option) error {
	if opts.answers != "" && opts.tui {
		return errors.UsageError("--answers and --tui cannot be used together")
	}
	if opts.printConfig {
		_, err := io.WriteString(cmd.OutOrStdout(), config.DefaultConfigToml)
		return err
	}

	cfgPath, explicit := opts.configPath, opts.configPath != ""
	if !explicit {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath, explicit)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd, cfg, opts.verbose)
	if err != nil {
		return err
	}
	logger.Debug("settings loaded", "path", cfgPath, "mode", cfg.UI.Mode, "style", cfg.Output.Style)

	svc := service.NewService(fs.NewRealFS(), append([]service.Option{service.WithLogger(logger)}, svcOpts...)...)
	collector := chooseCollector(cmd, svc, base, cfg, opts)
	logger.Debug("collecting answers", "collector", collectorName(collector), "base", base)

	ctx := cmd.Context()
	result, err := runService(ctx, svc, base, collector)
	if err != nil {
		return err
	}

	if opts.quiet || cfg.Output.Quiet {
		return nil
	}
	return renderer.NewRenderer(cfg.Output.Style, cfg.Output.WordWrap, logger).Render(cmd.OutOrStdout(), result)
}

func newLogger(cmd *cobra.Command, cfg config.Config, verbose bool) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, errors.ConfigError(err.Error(), nil)
	}
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

func chooseCollector(cmd *cobra.Command, svc *service.Service, base string, cfg config.Config, opts options) prompt.Collector {
	switch {
	case opts.answers != "":
		return prompt.FileCollector{Path: opts.answers}
	case opts.tui || cfg.UI.Mode == config.ModeTUI:
		return ui.FormCollector{
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
			KnownTags: svc.KnownTags(base),
		}
	default:
		return prompt.NewLineCollector(cmd.InOrStdin(), cmd.OutOrStdout())
	}
}

func collectorName(c prompt.Collector) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}

type outcome struct {
	result *service.Result
	err    error
}

// runService returns as soon as ctx is done, even while a prompt is still
// blocked reading its input.
func runService(ctx context.Context, svc *service.Service, base string, collector prompt.Collector) (*service.Result, error) {
	done := make(chan outcome, 1)
	go func() {
		result, err := svc.Run(ctx, base, collector)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), errors.ErrCodeCancelled, "interrupted")
	}
}
