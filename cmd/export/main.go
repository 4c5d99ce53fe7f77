// Command export writes the assembled question bank to an XLSX workbook,
// one sheet per section, for content review outside the app.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/prepworks/satprep/internal/questions"
)

var (
	dataDir string
	outPath string
)

var rootCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the question bank to an XLSX workbook",
	RunE:  runExport,
}

func init() {
	rootCmd.Flags().StringVarP(&dataDir, "data", "d", "./data", "Directory holding the question dataset files")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "questions.xlsx", "Output workbook path")
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var header = []any{
	"ID", "Source ID", "Sub-section", "Topic", "Sub-topic", "Difficulty",
	"Passage", "Question", "Option A", "Option B", "Option C", "Option D",
	"Answer", "Explanation",
}

func runExport(cmd *cobra.Command, _ []string) error {
	bank := questions.NewBank(os.DirFS(dataDir))
	all := bank.Questions()
	if len(all) == 0 {
		return fmt.Errorf("no questions loaded from %s", dataDir)
	}
	for _, report := range bank.Reports() {
		if report.Err != "" {
			slog.Warn("dataset failed to load", "dataset", report.Dataset, "error", report.Err)
		}
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheets := map[questions.Section]string{
		questions.SectionReadingWriting: "Reading & Writing",
		questions.SectionMath:           "Math",
	}
	rows := map[questions.Section]int{}
	for _, section := range []questions.Section{questions.SectionReadingWriting, questions.SectionMath} {
		name := sheets[section]
		if _, err := workbook.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
		cell, _ := excelize.CoordinatesToCellName(1, 1)
		if err := workbook.SetSheetRow(name, cell, &header); err != nil {
			return fmt.Errorf("writing header on %s: %w", name, err)
		}
		rows[section] = 1
	}
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for i := range all {
		q := &all[i]
		name, ok := sheets[q.Section]
		if !ok {
			continue
		}
		rows[q.Section]++
		cell, _ := excelize.CoordinatesToCellName(1, rows[q.Section])
		row := []any{
			q.ID, q.SourceID, q.SubSection, q.Topic, q.SubTopic, string(q.Difficulty),
			q.Passage, q.QuestionPrompt,
			q.Options["A"], q.Options["B"], q.Options["C"], q.Options["D"],
			q.CorrectAnswer, q.Explanation,
		}
		if err := workbook.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing row %d on %s: %w", rows[q.Section], name, err)
		}
	}

	if err := workbook.SaveAs(outPath); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	slog.Info("workbook written", "path", outPath, "questions", len(all))
	return nil
}
