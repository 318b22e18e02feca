package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsekula/n8n-python/internal/replacer"
)

var (
	replaceSearch string
	replaceWith   string
)

var replaceCmd = &cobra.Command{
	Use:   "replace <file>",
	Short: "Replace text in a slide deck",
	Long: `Replaces every occurrence of --search with --replace in the text
shapes of a .pptx deck. The result is written to modified_<name> next to the
deck; the deck itself is not changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().StringVar(&replaceSearch, "search", "", "text to search for (default from config)")
	replaceCmd.Flags().StringVar(&replaceWith, "replace", "", "replacement text (default from config)")
	rootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	search := a.cfg.Replace.SearchText
	if cmd.Flags().Changed("search") {
		search = replaceSearch
	}
	replacement := a.cfg.Replace.ReplaceText
	if cmd.Flags().Changed("replace") {
		replacement = replaceWith
	}

	res, err := replacer.New(a.cfg.Replace, a.log).Replace(cmd.Context(), args[0], search, replacement)
	if err != nil {
		return fmt.Errorf("replace failed: %w", err)
	}

	cmd.Printf("Replaced %d occurrence(s) of %q\n", res.Replacements, search)
	cmd.Printf("Saved: %s\n", res.OutputPath)
	return nil
}
