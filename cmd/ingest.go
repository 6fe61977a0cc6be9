package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/librarian/internal/ingest"
	"github.com/arcanaland/librarian/internal/log"
	"github.com/arcanaland/librarian/internal/normalize"
	"github.com/arcanaland/librarian/internal/store"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [catalog]",
	Short: "Load a plain-text card catalog into the card database",
	Long: `Ingest parses the catalog, normalizes every card and commits the result
to the card database in a single transaction. Any format error rolls the whole
run back. Running the same catalog twice leaves the database unchanged.

Examples:
  librarian ingest cardlist.txt
  librarian ingest --db ./cards.db cardlist.txt
  librarian ingest --dry-run cardlist.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath := args[0]
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		quiet, _ := cmd.Flags().GetBool("quiet")

		f, err := os.Open(catalogPath)
		if os.IsNotExist(err) {
			return fmt.Errorf("catalog not found: %s", catalogPath)
		}
		if err != nil {
			return fmt.Errorf("error opening catalog: %v", err)
		}
		defer f.Close()

		tables, err := loadTables()
		if err != nil {
			return err
		}
		n := normalize.New(tables)
		ctx := cmd.Context()

		progress := func(count int, name string) {
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "\r%5d %s\033[K", count, name)
			}
		}

		var stats ingest.Stats
		if dryRun {
			ing := ingest.New(n, nil)
			ing.OnProgress(progress)
			stats, err = ing.Run(ctx, f)
		} else {
			db, openErr := openDatabase(ctx)
			if openErr != nil {
				return openErr
			}
			defer db.Close()

			err = db.WithTx(ctx, func(s store.Store) error {
				ing := ingest.New(n, s)
				ing.OnProgress(progress)
				var runErr error
				stats, runErr = ing.Run(ctx, f)
				return runErr
			})
		}
		if !quiet && stats.Cards > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err != nil {
			log.Error("ingest failed", "run", stats.RunID, "error", err)
			return fmt.Errorf("ingest failed after %d cards: %w", stats.Cards, err)
		}

		printStats(cmd, stats, dryRun)
		return nil
	},
}

func init() {
	ingestCmd.Flags().Bool("dry-run", false, "parse and normalize without writing to the database")
	ingestCmd.Flags().BoolP("quiet", "q", false, "do not print per-card progress")
}

func printStats(cmd *cobra.Command, stats ingest.Stats, dryRun bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Ingest Results:")
	fmt.Fprintln(out, "---------------")
	if dryRun {
		fmt.Fprintf(out, "✅ %s cards parsed (dry run, nothing stored)\n", color.HiWhiteString("%d", stats.Cards))
	} else {
		fmt.Fprintf(out, "✅ %s cards committed to %s\n", color.HiWhiteString("%d", stats.Cards), cfg.Database)
	}
	fmt.Fprintf(out, "%s %d\n", color.CyanString("Aliases: "), stats.Aliases)
	if stats.Warnings > 0 {
		fmt.Fprintf(out, "%s %s\n", color.CyanString("Warnings:"), color.YellowString("%d", stats.Warnings))
	} else {
		fmt.Fprintf(out, "%s %d\n", color.CyanString("Warnings:"), 0)
	}
	fmt.Fprintf(out, "%s %s\n", color.CyanString("Duration:"), stats.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "%s %s\n", color.CyanString("Run:     "), stats.RunID)
}
