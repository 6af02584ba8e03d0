package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/langcoach/internal/app"
	"github.com/abhisek/langcoach/internal/genclient"
	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/logging"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs always go to a file.
	if cfg.Log.File == "" {
		p, err := logging.DefaultFilePath()
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		cfg.Log.File = p
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

	client := genclient.New(cfg.Client.Endpoint,
		genclient.WithTimeout(cfg.Client.Timeout),
		genclient.WithLogger(log),
	)
	skipWelcome, _ := cmd.Flags().GetBool("skip-welcome")

	log.WithField("endpoint", client.Endpoint()).Info("starting tui")
	return app.Run(app.Options{
		Generator:   client,
		Library:     library.New(st.KV(), log),
		Log:         log,
		SkipWelcome: skipWelcome,
	})
}
