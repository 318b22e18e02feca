package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsekula/n8n-python/internal/processor"
)

var (
	batchTransform string
	batchInput     string
	batchOutput    string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a transform over a JSON batch of items",
	Long: `Reads a JSON array of items, applies one transform to each and writes
one result per item in the same order. Failed items carry their error
instead of failing the batch.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchTransform, "transform", "t", "", "audio, extract or replace")
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "batch file to read")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "results file (default stdout)")
	_ = batchCmd.MarkFlagRequired("transform")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	kind, err := processor.ParseKind(batchTransform)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	proc := a.processor()
	if batchOutput != "" {
		results, err := proc.RunFile(cmd.Context(), kind, batchInput, batchOutput)
		if err != nil {
			return err
		}
		cmd.Printf("Wrote %d result(s) to %s\n", len(results), batchOutput)
		return nil
	}

	items, err := processor.ReadItems(batchInput)
	if err != nil {
		return err
	}
	return processor.WriteItems(cmd.OutOrStdout(), proc.Run(cmd.Context(), kind, items))
}
