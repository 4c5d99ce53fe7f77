// Command convert rewrites nested-legacy question files to the
// flat-canonical shape in place. Files already in the canonical shape
// are left untouched, so the command is safe to run repeatedly.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prepworks/satprep/internal/questions"
)

var (
	dataDir string
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert nested-legacy question files to the canonical shape",
	RunE:  runConvert,
}

func init() {
	rootCmd.Flags().StringVarP(&dataDir, "data", "d", "./data", "Directory holding the question dataset files")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, _ []string) error {
	loader := questions.NewLoader(os.DirFS(dataDir))

	var converted, skipped, failed int
	for _, ds := range questions.DefaultCatalog {
		if ds.Shape != questions.ShapeNestedLegacy {
			continue
		}
		path := filepath.Join(dataDir, filepath.FromSlash(ds.Name))

		raw, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			slog.Warn("dataset file missing", "dataset", ds.Name)
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", ds.Name, err)
		}
		if questions.IsFlatCanonical(raw) {
			slog.Info("already canonical", "dataset", ds.Name)
			skipped++
			continue
		}

		doc, report := loader.Load(ds.Name)
		if doc == nil {
			slog.Error("dataset unrecoverable", "dataset", ds.Name, "error", report.Err)
			failed++
			continue
		}

		out, err := questions.ConvertToFlat(ds, doc)
		if err != nil {
			slog.Error("conversion failed", "dataset", ds.Name, "error", err)
			failed++
			continue
		}

		if dryRun {
			slog.Info("would convert", "dataset", ds.Name, "stage", report.Stage, "bytes", len(out))
			converted++
			continue
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", ds.Name, err)
		}
		slog.Info("converted", "dataset", ds.Name, "stage", report.Stage)
		converted++
	}

	slog.Info("conversion finished", "converted", converted, "skipped", skipped, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d dataset(s) failed to convert", failed)
	}
	return nil
}
