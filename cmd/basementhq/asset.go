package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kostyay/basementhq/internal/theme"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage the uploaded logo, background and font",
}

var assetUploadCmd = &cobra.Command{
	Use:   "upload <logo|background|font> <file>",
	Short: "Store a .png logo or background, or a .ttf/.otf font",
	Long: `Store an asset in the data directory. The board picks it up on its
next theme refresh.

Examples:
  basementhq asset upload logo ./logo.png
  basementhq asset upload font ./PressStart2P.ttf`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		assets, kind, err := openAssets(args[0])
		if err != nil {
			return err
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()

		path, err := assets.Save(kind, filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s saved to %s\n", kind, path)
		return nil
	},
}

var assetRemoveCmd = &cobra.Command{
	Use:   "remove <logo|background|font>",
	Short: "Delete a stored asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assets, kind, err := openAssets(args[0])
		if err != nil {
			return err
		}
		if err := assets.Remove(kind); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s removed\n", kind)
		return nil
	},
}

func init() {
	assetCmd.AddCommand(assetUploadCmd, assetRemoveCmd)
	rootCmd.AddCommand(assetCmd)
}

func openAssets(rawKind string) (*theme.Assets, theme.AssetKind, error) {
	kind, err := theme.ParseAssetKind(rawKind)
	if err != nil {
		return nil, "", err
	}
	settings, err := loadSettings()
	if err != nil {
		return nil, "", err
	}
	return theme.NewAssets(settings.AssetDir()), kind, nil
}
