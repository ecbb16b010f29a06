package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wear-simulator/app"
	"wear-simulator/db"
	"wear-simulator/models"
	"wear-simulator/repository"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or load the sticker catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stickers of a category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := app.OpenCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		category, _ := cmd.Flags().GetString("category")
		entries, err := catalog.ListEntries(cmd.Context(), category)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", e.ID, e.Category, e.Name, e.URL)
		}
		return nil
	},
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the YAML catalog into Postgres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var doc *models.CatalogDocument
		if cfg.CatalogFile != "" {
			data, err := os.ReadFile(cfg.CatalogFile)
			if err != nil {
				return fmt.Errorf("failed to read catalog file: %w", err)
			}
			doc, err = repository.ParseCatalog(data)
			if err != nil {
				return err
			}
		} else if doc, err = repository.DefaultCatalog(); err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := db.InitDB(ctx, ""); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.CloseDB()

		repo := repository.NewCatalogRepository()
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := repo.Seed(ctx, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d stickers\n", len(doc.Stickers))
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("category", "all", "category to list")
	catalogCmd.AddCommand(catalogListCmd, catalogSeedCmd)
	rootCmd.AddCommand(catalogCmd)
}
