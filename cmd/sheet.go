package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wear-simulator/app"
	"wear-simulator/db"
	"wear-simulator/service"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Write the printable sticker sheet as HTML, PNG or PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		format = strings.ToLower(strings.TrimSpace(format))
		if format != "html" && format != "png" && format != "pdf" {
			return fmt.Errorf("invalid format %q. Valid formats: html, pdf, png", format)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		catalog, err := app.OpenCatalog(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		catalogService := app.NewCatalogService(cfg, catalog, service.NewAssetService(os.DirFS(cfg.AssetDir)))
		category, _ := cmd.Flags().GetString("category")

		var data []byte
		switch format {
		case "pdf":
			data, err = catalogService.GeneratePDF(ctx, category)
		case "png":
			data, err = catalogService.GeneratePNG(ctx, category)
		default:
			var html string
			html, err = catalogService.RenderSheetHTML(ctx, category, true)
			data = []byte(html)
		}
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" || out == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write sheet: %w", err)
		}
		log.Printf("✓ Sticker sheet written to %s (%d bytes)", out, len(data))
		return nil
	},
}

func init() {
	sheetCmd.Flags().String("category", "all", "category to print")
	sheetCmd.Flags().String("format", "html", "output format: html, png or pdf")
	sheetCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(sheetCmd)
}
