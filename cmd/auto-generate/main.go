package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gamereviews/database"
	"gamereviews/internal/app"
	"gamereviews/internal/config"
	"gamereviews/internal/importer"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var opts = importer.DefaultAutoOptions()

var rootCmd = &cobra.Command{
	Use:   "auto-generate",
	Short: "Create reviews for random games from popular franchises",
	Long: `auto-generate searches the game catalog with random franchise names and creates
reviews for games that are not in the catalog yet. Reviews are published with a random
score between --min-score and --max-score.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().IntVar(&opts.Count, "count", opts.Count, "number of reviews to create (1-100)")
	rootCmd.Flags().Float64Var(&opts.MinScore, "min-score", opts.MinScore, "minimum review score")
	rootCmd.Flags().Float64Var(&opts.MaxScore, "max-score", opts.MaxScore, "maximum review score")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateImporter(); err != nil {
		return err
	}
	logger := app.NewLogger(cfg)

	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	store, closeCache := app.NewCache(ctx, cfg, logger)
	defer closeCache()

	catalog := app.NewCatalog(cfg, store, logger)
	orchestrator := app.NewImporter(db, catalog, app.NewMirror(cfg, logger), app.NewGenerator(cfg, logger), logger)
	if err := orchestrator.ValidateAuto(opts); err != nil {
		return err
	}

	color.New(color.FgCyan).Fprintf(out, "Generating %d reviews with scores %.1f-%.1f\n", opts.Count, opts.MinScore, opts.MaxScore)
	report, err := orchestrator.AutoGenerate(ctx, opts)
	if err != nil {
		return err
	}
	printReport(out, report, opts.Count)
	return nil
}

// printReport writes one line per candidate and a closing total.
func printReport(out io.Writer, report *importer.BatchReport, requested int) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	created := 0
	for _, it := range report.Items {
		switch it.Outcome {
		case importer.OutcomeCreated:
			created++
			green.Fprintf(out, "Created %d/%d: %s (%.1f/10)\n", created, requested, it.Title, it.Score)
		case importer.OutcomeFailed:
			if it.Reason == importer.ReasonCatalogError {
				yellow.Fprintf(out, "Catalog search failed for %q: %s\n", it.Title, it.Error)
				continue
			}
			red.Fprintf(out, "Error: %s: %s\n", it.Title, it.Error)
		}
	}

	green.Fprintf(out, "Created %d reviews\n", report.Created)
	if report.Created < requested {
		yellow.Fprintf(out, "Stopped after %d attempts (%d duplicates skipped)\n", report.Attempts, report.Skipped)
	}
}
