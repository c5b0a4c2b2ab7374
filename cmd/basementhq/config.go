package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kostyay/basementhq/internal/config"
	"github.com/kostyay/basementhq/internal/output"
)

var (
	configJSON   bool
	configReveal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and edit the dashboard config store",
	Long: `Read and edit the key=value store behind every dashboard setting.

Examples:
  basementhq config list
  basementhq config get THEME
  basementhq config set THEME "Retro (Amber)"
  basementhq config set PING_HOST_2 ""   # disable the second reachability check`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		value := store.Value(args[0])
		if !configReveal {
			value = config.Mask(args[0], value)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a value; an empty value is written as-is",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Upsert(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s saved to %s\n", args[0], store.Path())
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored entries with secrets masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		entries := store.Entries()
		if configJSON {
			return output.RenderEntries(cmd.OutOrStdout(), entries)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, e := range output.MaskEntries(entries) {
			fmt.Fprintf(tw, "%s\t%s\n", e.Key, e.Value)
		}
		return tw.Flush()
	},
}

func init() {
	configGetCmd.Flags().BoolVar(&configReveal, "reveal", false, "Print secret values unmasked")
	configListCmd.Flags().BoolVar(&configJSON, "json", false, "Output in JSON format")
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}

func openStore() (*config.Store, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	log, err := newStderrLogger(settings)
	if err != nil {
		return nil, err
	}
	return config.OpenStore(settings.StorePath(), config.WithLogger(log.Named("config")))
}
