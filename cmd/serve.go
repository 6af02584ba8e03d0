package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/langcoach/internal/generator"
	"github.com/abhisek/langcoach/internal/llm"
	"github.com/abhisek/langcoach/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the exercise generation server",
	Long: `Serve POST /api/exercises backed by the configured LLM providers.

A provider is enabled when its API key is set, either in the config file or
through GROQ_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY.
Every LLM call is recorded in the database; see "langcoach llm".`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers := llm.NewProviders(ctx, cfg.LLM, st.EventRepo(), log)
	if len(providers) == 0 {
		return fmt.Errorf("no LLM provider configured: set GROQ_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY")
	}

	gen := generator.New(providers, cfg.Generation, log)
	return server.New(gen, cfg.Server, log).Run(ctx)
}
