package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylecheck/check"
	"stylecheck/config"
	"stylecheck/document"
	"stylecheck/misc"
	"stylecheck/state"
)

// initializeAppContext loads configuration and sets up logging and the
// optional debug report once arguments are parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// effective configuration goes into the report when a file was given
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	env.RestoreStdLog()

	// logger is gone, from here on errors go to stderr
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// crash output is no longer needed, drop it when nothing was written
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// errWasHandled is set once a command error reached the log, main does not
// print it again.
var errWasHandled bool

// exitErrHandler runs while logger is still available.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "reports formatting around phrases in HTML, Markdown, DOCX, RTF and PDF documents",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "check",
				Usage:        "Locates phrases in document(s) and reports formatting around them",
				OnUsageError: usageErrorHandler,
				Action:       check.Run,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "context", Aliases: []string{"ctx"},
						Usage: "show `N` characters of context on each side of the match (overrides configuration)"},
				},
				ArgsUsage: "SOURCE PHRASE [PHRASE...]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to a document or to a directory, following document types are supported:
        %s
    directories are processed recursively, unsupported files are skipped

PHRASE:
    text to look for, case is ignored. When phrase does not occur literally
    span between its first and last word is reported.
`, cli.CommandHelpTemplate, strings.Join(document.FormatNames(), ", ")),
			},
			{
				Name:         "formats",
				Usage:        "Lists supported document formats and their file extensions",
				OnUsageError: usageErrorHandler,
				Action:       outputFormats,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file to write configuration to, standard output when omitted

Writes configuration in effect: embedded defaults overlaid with the file given
by --config. Use --default to see embedded defaults alone.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// must stay the only deferred call in main, os.Exit skips the rest
	defer func() {
		stop()
		if err != nil {
			// argument errors happen before logger exists
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputFormats(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)
	for _, name := range document.FormatNames() {
		f, err := document.ParseFormat(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(env.Out, "%-10s %s\n", name, strings.Join(f.Extensions(), " ")); err != nil {
			return fmt.Errorf("unable to write formats: %w", err)
		}
	}
	return nil
}

// outputConfiguration writes either embedded or effective configuration to
// the file named by the first argument or to the standard output.
func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	kind, produce := "actual", func() ([]byte, error) { return config.Dump(env.Cfg) }
	if cmd.Bool("default") {
		kind, produce = "default", config.Prepare
	}
	data, err := produce()
	if err != nil {
		return fmt.Errorf("unable to get %s configuration: %w", kind, err)
	}

	fname, out := cmd.Args().Get(0), env.Out
	if len(fname) > 0 {
		var f *os.File
		if f, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		out = f
	} else {
		fname = "STDOUT"
	}
	env.Log.Info("Writing configuration", zap.String("state", kind), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
