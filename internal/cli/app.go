// Package cli wires the swgapi commands: the terminal UI plus scriptable
// call, endpoints, openapi and version commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"swgapi/internal/config"
	"swgapi/internal/errors"
	"swgapi/internal/logging"
	"swgapi/internal/model"
	"swgapi/internal/output"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// App holds what every command needs once flags and config are resolved.
type App struct {
	version string
	commit  string
	date    string

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     zerolog.Logger
	logCloser  io.Closer
}

func New(version, commit, date string) *App {
	return &App{
		version: version,
		commit:  commit,
		date:    date,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		logger:  zerolog.Nop(),
	}
}

// SetIO replaces stdin, stdout and stderr.
func (a *App) SetIO(in io.Reader, out, errOut io.Writer) {
	a.in, a.out, a.errOut = in, out, errOut
}

// Run executes args and returns the process exit code. Errors are printed
// to stderr unless a command already reported them.
func (a *App) Run(ctx context.Context, args []string) int {
	defer a.closeLog()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	var r reportedError
	if !errors.As(err, &r) {
		fmt.Fprintf(a.errOut, "error: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errors.ErrInvalidInput):
		return ExitUsage
	default:
		return ExitError
	}
}

// reportedError wraps an error whose details were already written out.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "swgapi",
		Short: "SWGEmu Core3 REST API console",
		Long: `swgapi exercises the REST API built into the SWGEmu Core3 server.

Run without arguments for the interactive terminal UI, or use "call" to
send a single request from scripts. The bearer token is the server's
Core3.RESTServer.APIToken from config-local.lua.`,
		Version:           a.version,
		Args:              noArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewValidationError("flags", err.Error())
	})
	root.SetVersionTemplate("swgapi {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is $HOME/.swgapi.yaml or ./.swgapi.yaml)")
	pf.String(config.KeyHost, model.DefaultHost, "Core3 server host")
	pf.Int(config.KeyPort, model.DefaultPort, "Core3 REST port")
	pf.String(config.KeyToken, "", "API token (Core3.RESTServer.APIToken)")
	pf.Bool(config.KeyInsecure, true, "skip TLS certificate verification")
	pf.String(config.KeyCAFile, "", "CA bundle to trust when --insecure=false")
	pf.Duration(config.KeyTimeout, model.DefaultTimeout, "request timeout")
	pf.StringP(config.KeyOutput, "o", "", "output format: table, json, yaml, raw")
	pf.BoolP(config.KeyVerbose, "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.Bool(config.KeyNoColor, false, "disable colored output")
	pf.String(config.KeyLogLevel, "", "log level: trace, debug, info, warn, error")
	pf.String(config.KeyLogFormat, "auto", "log format: auto, json, console")
	pf.String(config.KeyLogOutput, "stderr", "log output: stderr, stdout, discard or a file path")

	root.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	root.AddCommand(
		a.newTUICommand(),
		a.newCallCommand(),
		a.newEndpointsCommand(),
		a.newOpenAPICommand(),
		a.newVersionCommand(),
	)
	return root
}

// setup resolves configuration for the command about to run.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnvFiles()

	a.v = config.New()
	if err := a.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return errors.NewValidationError("config", err.Error())
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(cfg.Output); err != nil {
		return errors.NewValidationError(config.KeyOutput, err.Error())
	}
	a.cfg = cfg

	a.closeLog()
	a.logCloser = logging.Configure(&cfg.Log)
	a.logger = *logging.L()
	if cfg.File != "" {
		a.logger.Debug().Str("file", cfg.File).Msg("using config file")
	}
	return nil
}

func (a *App) closeLog() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

// format returns the configured output format, or fallback when none is set.
func (a *App) format(fallback output.Format) output.Format {
	f, _ := output.ParseFormat(a.cfg.Output)
	if f == "" {
		return fallback
	}
	return f
}

func (a *App) color() bool {
	return !a.cfg.NoColor && output.IsTerminal(a.out)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.NewValidationError("command", fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath()))
	}
	return nil
}
