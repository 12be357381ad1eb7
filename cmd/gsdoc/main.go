package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"gsdoc/build"
	"gsdoc/config"
	"gsdoc/misc"
	"gsdoc/state"
)

const resolveHelp = `%s
SOURCE:
    spreadsheet with table of contents worksheet, one of:
        path to a workbook: "[path_to_file]book.xlsx" - relative paths are taken from document root
        file URL: "file:///path/to/book.xlsx"
        bare name: "book" - searched for (case insensitive) under document root, must be unique

	Document root is "document.root" configuration value or current working
	directory. Nested spreadsheets linked from TOC rows are located the same way.

DESTINATION:
    path to resulting YAML file or existing directory to put "<source name>.yaml" into
    if absent - current working directory
`

const dumpConfigHelp = `%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Active configuration is the embedded defaults with values from configuration
file laid on top. Use --default to see embedded defaults alone.
`

// setup loads configuration, opens debug report and logs once arguments are
// parsed. Without arguments there is nothing to prepare.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	cfgFile := cmd.String("config")

	var err error
	if env.Cfg, err = config.LoadConfiguration(cfgFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug report: %w", err)
		}
		if cfgFile != "" {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData("config/"+filepath.Base(cfgFile), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Starting",
		zap.Strings("args", os.Args),
		zap.Stringer("run", env.RunID),
		zap.String("version", misc.GetVersion()),
		zap.String("go", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	switch {
	case env.Rpt != nil:
		env.Log.Info("Debug report requested", zap.String("location", env.Rpt.Name()))
	case cfgFile == "":
		env.Log.Info("No configuration file, using defaults")
	}
	return ctx, nil
}

// teardown flushes logs before report is closed, so report gets complete
// log files. Errors after that point go to stderr.
func teardown(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Finished", zap.Duration("elapsed", env.Uptime()), zap.Strings("args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	var err error
	if cerr := env.Rpt.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", cerr))
	}
	if env.Cfg != nil && env.Cfg.Logging.FileLogger.Destination != "" {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		err = multierr.Append(err, removeEmpty(env.Cfg.Logging.PanicLogName()))
	}
	return err
}

func removeEmpty(name string) error {
	fi, err := os.Stat(name)
	if err != nil || fi.Size() != 0 {
		return nil
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("unable to remove empty panic log %q: %w", name, err)
	}
	return nil
}

// logged is set when failure already went to the log, so it is not printed
// again on exit.
var logged bool

func logExitError(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Failed", zap.Error(err))
		logged = true
	}
}

func passUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func unknownCommand(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "assembles documents from spreadsheet tables of contents",
		Version:         fmt.Sprintf("%s (%s) : %s", misc.GetVersion(), runtime.Version(), misc.GetGitHash()),
		HideHelpCommand: true,
		Before:          setup,
		After:           teardown,
		OnUsageError:    passUsageError,
		ExitErrHandler:  logExitError,
		CommandNotFound: unknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything and produce report archive for troubleshooting"},
		},
		Commands: []*cli.Command{resolveCommand(), dumpConfigCommand()},
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:         "resolve",
		Usage:        "Resolves spreadsheet table of contents into section tree (YAML)",
		OnUsageError: passUsageError,
		Action:       build.Run,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace existing destination file"},
			&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "resolve and report problems only, do not write anything"},
			&cli.StringFlag{Name: "assets", Usage: "put acquired images and files into `DIR` instead of <destination>_assets"},
		},
		ArgsUsage:          "SOURCE [DESTINATION]",
		CustomHelpTemplate: fmt.Sprintf(resolveHelp, cli.CommandHelpTemplate),
	}
}

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Dumps either default or active configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		OnUsageError:       passUsageError,
		Action:             dumpConfig,
		ArgsUsage:          "DESTINATION",
		CustomHelpTemplate: fmt.Sprintf(dumpConfigHelp, cli.CommandHelpTemplate),
	}
}

func dumpConfig(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	which, data := "active", []byte(nil)
	if cmd.Bool("default") {
		which = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	var out io.Writer = os.Stdout
	name := cmd.Args().Get(0)
	if name != "" {
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("unable to create destination file %q: %w", name, err)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		out = f
	} else {
		name = "STDOUT"
	}
	env.Log.Info("Writing configuration", zap.String("which", which), zap.String("file", name))

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func run() int {
	// interrupt cancels resolution including pending retry delays
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		// log may not exist yet (argument parsing) or be closed already
		if !logged {
			fmt.Fprintf(os.Stderr, "%s: %v\n", misc.GetAppName(), err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
