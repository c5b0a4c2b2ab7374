package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/kostyay/basementhq/internal/board"
	"github.com/kostyay/basementhq/internal/config"
	hqerrors "github.com/kostyay/basementhq/internal/errors"
	"github.com/kostyay/basementhq/internal/logging"
	"github.com/kostyay/basementhq/internal/output"
	"github.com/kostyay/basementhq/internal/ui"
)

// v holds process settings; flags are bound to it in init.
var v = viper.New()

var jsonOutput bool

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", config.DefaultDataDir(), "Directory holding the config store, uploads and logs")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
	_ = v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))

	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print one JSON snapshot of every source and exit")
}

var rootCmd = &cobra.Command{
	Use:   "basementhq",
	Short: "Basement HQ - live status board for a home server",
	Long: `basementhq polls the host, the network, reachability targets, the media
server, the DNS filter, the container runtime and the weather, and shows
the results as a live terminal board.

When stdout is not a terminal (or with --json) it prints one snapshot and exits:
  basementhq --json | jq '.sources[] | select(.status != "ok")'

Run "basementhq serve" for the HTTP API.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		// JSON mode: explicit flag or non-TTY stdout
		if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
			return runSnapshot(cmd.Context(), settings, cmd.OutOrStdout())
		}
		return runBoard(settings)
	},
}

func loadSettings() (*config.Settings, error) {
	s, err := config.LoadSettings(v)
	if err != nil {
		return nil, hqerrors.WrapWithCode(err, hqerrors.ErrConfig,
			"Failed to load settings",
			"Check "+config.SettingsFileName+" in the data directory and the BASEMENTHQ_* environment")
	}
	return s, nil
}

// runBoard runs the terminal board. Logs go to a file so they do not
// corrupt the alternate screen.
func runBoard(settings *config.Settings) error {
	if err := os.MkdirAll(settings.DataDir, 0o755); err != nil {
		return dataDirError(settings.DataDir, err)
	}
	logFile, err := os.OpenFile(settings.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return dataDirError(settings.DataDir, err)
	}
	defer logFile.Close()

	log, err := logging.New(settings.Log.Level, settings.Log.Format, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := board.New(settings, board.WithLogger(log))
	if err != nil {
		return err
	}
	defer st.Close()

	m := ui.NewModel(st, settings.FastInterval, settings.ContainerInterval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal board: %w", err)
	}
	return nil
}

// runSnapshot polls every source once and writes the results as JSON.
func runSnapshot(ctx context.Context, settings *config.Settings, w io.Writer) error {
	log, err := newStderrLogger(settings)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := board.New(settings, board.WithLogger(log))
	if err != nil {
		return err
	}
	defer st.Close()

	reports := st.PollAll(ctx)
	params := st.Theme()
	return output.RenderJSON(w, output.NewStatus(reports, params.Title, params.ThemeName, time.Now()))
}

func newStderrLogger(settings *config.Settings) (*zap.Logger, error) {
	return logging.New(settings.Log.Level, settings.Log.Format, os.Stderr)
}

func dataDirError(dir string, err error) error {
	return hqerrors.WrapWithCode(err, hqerrors.ErrConfig,
		"Cannot use data directory "+dir,
		"Check the directory exists and is writable, or pass --data-dir")
}

// reportError prints err for the operator. Structured errors already carry
// their own layout.
func reportError(w io.Writer, err error) {
	var he *hqerrors.Error
	if errors.As(err, &he) {
		fmt.Fprint(w, he.Error())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
