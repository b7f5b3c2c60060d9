package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"study-rag/internal/helper"
	"study-rag/internal/report"
)

var (
	numCards     int
	numQuestions int
	showAnswers  bool
	outputJSON   bool
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Generate flashcards from the indexed document",
	Args:  cobra.NoArgs,
	RunE:  runFlashcards,
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate multiple choice questions from the indexed document",
	Args:  cobra.NoArgs,
	RunE:  runQuiz,
}

func init() {
	rootCmd.AddCommand(flashcardsCmd, quizCmd)
	flashcardsCmd.Flags().IntVarP(&numCards, "num", "n", 0, "number of flashcards (default from config)")
	flashcardsCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	quizCmd.Flags().IntVarP(&numQuestions, "num", "n", 0, "number of questions (default from config)")
	quizCmd.Flags().BoolVar(&showAnswers, "answers", false, "show the correct answers")
	quizCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, st, err := restore(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	st, err = a.svc.Flashcards(ctx, st, numCards)
	if err != nil {
		return err
	}
	if outputJSON {
		helper.PrettyPrint(cmd.OutOrStdout(), st.Flashcards)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), report.FormatFlashcards(st.Flashcards))
	return nil
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, st, err := restore(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	st, err = a.svc.Quiz(ctx, st, numQuestions)
	if err != nil {
		return err
	}
	if outputJSON {
		helper.PrettyPrint(cmd.OutOrStdout(), st.Quiz)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), report.FormatQuiz(st.Quiz, showAnswers))
	return nil
}
