// Command printbridge-admin is the operator CLI of the print bridge: it
// applies migrations, inspects printers and history, and renders or sends
// labels without going through the HTTP endpoint.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mleczna-droga/printbridge/config"
	"github.com/mleczna-droga/printbridge/internal/bootstrap"
)

// app carries what every subcommand needs once the root command has loaded config.
type app struct {
	cfg        config.AppConfig
	logger     *slog.Logger
	loadConfig func() (config.AppConfig, error)
}

func main() {
	a := &app{loadConfig: bootstrap.LoadConfig}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newRootCmd(a *app) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "printbridge-admin",
		Short:        "Operator tools for the label print bridge",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if debug {
				cfg.Observability.LogLevel = "debug"
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.Observability.SlogLevel(),
			}))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")

	cmd.AddCommand(
		migrateCmd(a),
		printersCmd(a),
		renderCmd(a),
		printCmd(a),
		jobsCmd(a),
	)
	return cmd
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
