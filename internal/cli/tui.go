package cli

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"swgapi/internal/logging"
	"swgapi/internal/output"
	"swgapi/internal/ui"
)

func (a *App) newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tui",
		Short:   "Start the interactive terminal UI (default)",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE:    a.runTUI,
	}
}

func (a *App) runTUI(cmd *cobra.Command, _ []string) error {
	// The UI owns the terminal: log to a file at debug, otherwise nowhere.
	log := zerolog.Nop()
	if logging.ParseLevel(a.cfg.Log.Level) <= zerolog.DebugLevel {
		var closer io.Closer
		log, closer = logging.New(&logging.Config{
			Level:  a.cfg.Log.Level,
			Format: "json",
			Output: logging.TUIFile(),
		})
		defer closer.Close()
	}
	logging.SetDefault(log)

	app := ui.NewApp(a.in, a.out)
	app.SetConnection(a.cfg.Connection)
	app.SetLogger(log)
	app.SetFormat(a.format(output.FormatJSON))
	if err := app.Init(); err != nil {
		return err
	}
	return app.Run()
}
