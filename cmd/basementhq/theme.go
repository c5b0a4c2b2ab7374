package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kostyay/basementhq/internal/config"
	"github.com/kostyay/basementhq/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect the current theme",
}

var themeCSSCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the stylesheet for the current theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		log, err := newStderrLogger(settings)
		if err != nil {
			return err
		}
		store, err := config.OpenStore(settings.StorePath(), config.WithLogger(log.Named("config")))
		if err != nil {
			return err
		}
		r := theme.NewResolver(theme.NewAssets(settings.AssetDir()), log.Named("theme"))
		fmt.Fprint(cmd.OutOrStdout(), r.Resolve(store).Stylesheet())
		return nil
	},
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in palettes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table := theme.Builtin()
		for _, name := range table.Names() {
			p := table.Lookup(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, p.Primary)
		}
	},
}

func init() {
	themeCmd.AddCommand(themeCSSCmd, themeListCmd)
	rootCmd.AddCommand(themeCmd)
}
