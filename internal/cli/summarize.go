package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	summaryTitle  string
	summaryOutDir string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the indexed document to PDF",
	Long: `Generate a structured summary of the indexed document and render it as a PDF.
With --out the PDF and an HTML version are written to that directory, otherwise
the PDF goes to a temp file.`,
	Args: cobra.NoArgs,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&summaryTitle, "title", "t", "", "summary title (default from the document name)")
	summarizeCmd.Flags().StringVarP(&summaryOutDir, "out", "o", "", "output directory")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, st, err := restore(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	st, err = a.svc.Summarize(ctx, st, summaryTitle, summaryOutDir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", st.Summary.Text)
	fmt.Fprintf(out, "PDF:  %s\n", st.Summary.PDFPath)
	if st.Summary.HTMLPath != "" {
		fmt.Fprintf(out, "HTML: %s\n", st.Summary.HTMLPath)
	}
	return nil
}
