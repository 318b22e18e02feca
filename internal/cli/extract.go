package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tsekula/n8n-python/internal/extractor"
	"github.com/tsekula/n8n-python/internal/models"
)

var (
	extractJSON   bool
	extractReport bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the text of a slide deck",
	Long: `Reads every slide of a .pptx deck and writes its text, tables and
speaker notes to <base>_content.json next to the deck.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print the extracted content as JSON")
	extractCmd.Flags().BoolVar(&extractReport, "report", false, "also write a .docx report")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.cfg.Extract
	if extractReport {
		cfg.DocxReport = true
	}

	res, err := extractor.New(cfg, a.log).Extract(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if extractJSON {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Content); err != nil {
			return err
		}
		_, err := cmd.OutOrStdout().Write(models.UnescapeLineSeparators(buf.Bytes()))
		return err
	}

	cmd.Printf("Extracted %d slide(s) from %s\n", res.Content.SlideCount, res.Content.Title)
	cmd.Printf("Content: %s (%s)\n", res.OutputPath, fileSize(res.OutputPath))
	if res.ReportPath != "" {
		cmd.Printf("Report: %s (%s)\n", res.ReportPath, fileSize(res.ReportPath))
	}
	return nil
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown size"
	}
	return humanize.Bytes(uint64(info.Size()))
}
