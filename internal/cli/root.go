package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"study-rag/internal/config"
	"study-rag/internal/models"
)

const defaultConfigPath = "./configs/config.yaml"

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "study-rag",
	Short: "Turn a PDF or DOCX into flashcards, quizzes, answers and summaries",
	Long: `study-rag indexes one study document at a time and generates study material
from it with a language model.

Example usage:
  study-rag upload notes.pdf           # Upload and index a document
  study-rag flashcards -n 10           # Generate flashcards
  study-rag quiz -n 5 --answers        # Generate a quiz with answers
  study-rag ask "What is mitosis?"     # Ask a question about the document
  study-rag summarize --out reports    # Write a PDF and HTML summary
  study-rag tui                        # Interactive mode`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		setupLogger(cfg.Log.Level, debug)
		log.Debug().Interface("config", cfg).Msg("Loaded config")
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine prefixes err with its kind, e.g. "UnsupportedFormat: ...".
func errorLine(err error) string {
	return fmt.Sprintf("%s: %v", models.Kind(err), err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigPath, "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func setupLogger(level string, debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)

	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if debug {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger
}
