package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"wear-simulator/config"
	"wear-simulator/placement"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wear-simulator",
	Short: "Place stickers on garments at their real printed size",
	Long: strings.TrimSpace(`
Serves the garment sticker simulator: a sticker palette, design sessions that place,
move, rotate and delete stickers on a garment's front and back, rendered previews and a
printable sticker sheet. Running without a subcommand starts the server.
    `),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("port", "", "HTTP port (overrides PORT)")
	flags.String("asset-dir", "", "directory holding stickers/ and wear/ images (overrides ASSET_DIR)")
	flags.String("catalog", "", "YAML catalog file (overrides CATALOG_FILE)")
	flags.String("catalog-source", "", "catalog source: file or postgres (overrides CATALOG_SOURCE)")
	flags.String("policy", "", "placement policy: size-locked or free-transform (overrides PLACEMENT_POLICY)")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("port"); v != "" {
		cfg.Port = strings.TrimPrefix(v, ":")
		if os.Getenv("BASE_URL") == "" {
			cfg.BaseURL = "http://localhost:" + cfg.Port
		}
	}
	if v, _ := flags.GetString("asset-dir"); v != "" {
		cfg.AssetDir = v
	}
	if v, _ := flags.GetString("catalog"); v != "" {
		cfg.CatalogFile = v
	}
	if v, _ := flags.GetString("catalog-source"); v != "" {
		cfg.CatalogSource = strings.ToLower(v)
	}
	if v, _ := flags.GetString("policy"); v != "" {
		mode, err := placement.ParseMode(v)
		if err != nil {
			return nil, err
		}
		cfg.PlacementPolicy = mode
	}
	return cfg, cfg.Validate()
}

// Execute runs the root command until it returns or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
