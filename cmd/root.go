package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/langcoach/internal/config"
	"github.com/abhisek/langcoach/internal/genclient"
	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/logging"
	"github.com/abhisek/langcoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "langcoach",
	Short: "Fill-in-the-blank language practice",
	Long:  "LangCoach generates fill-in-the-blank exercises with an LLM and quizzes you on them in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LANGCOACH_DB env var)")
	pf.String("config", "", "Path to YAML config file")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("log-file", "", "Write logs to this file instead of stderr")

	rootCmd.Flags().String("endpoint", "", "Exercise generation endpoint (default "+genclient.DefaultEndpoint+")")
	rootCmd.Flags().Duration("timeout", 0, "Generation request timeout, 0 for none (default 2m)")
	rootCmd.Flags().Bool("skip-welcome", false, "Start directly on the form")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration with the command's flags applied.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the logger for cfg. The caller closes the returned
// closer.
func newLogger(cfg config.Config) (*logrus.Logger, io.Closer, error) {
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("configure logging: %w", err)
	}
	return log, closer, nil
}

// openStore opens the database named by the configuration, then the
// LANGCOACH_DB env var, then the default XDG path.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath := cfg.DB
	if dbPath != "" {
		if err := store.EnsureDir(dbPath); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = p
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// withLibrary runs fn with the persisted library and closes the store
// afterwards.
func withLibrary(cmd *cobra.Command, fn func(lib *library.Library) error) error {
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

	return fn(library.New(st.KV(), log))
}
