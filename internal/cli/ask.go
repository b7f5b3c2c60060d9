package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"study-rag/internal/report"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about the indexed document",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, st, err := restore(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	st, err = a.svc.Ask(ctx, st, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), report.FormatAnswer(st.Answer))
	return nil
}
