package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/langcoach/internal/library"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear stored history and favorites",
	Long:  "Clear stored history and favorites. Without flags both are cleared.",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, _ := cmd.Flags().GetBool("history")
		favorites, _ := cmd.Flags().GetBool("favorites")
		if !history && !favorites {
			history, favorites = true, true
		}

		return withLibrary(cmd, func(lib *library.Library) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			if history {
				if err := lib.ClearHistory(ctx); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				fmt.Fprintln(out, "History cleared.")
			}
			if favorites {
				if err := lib.ClearFavorites(ctx); err != nil {
					return fmt.Errorf("clear favorites: %w", err)
				}
				fmt.Fprintln(out, "Favorites cleared.")
			}
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("history", false, "Clear game history")
	resetCmd.Flags().Bool("favorites", false, "Clear favorites")
}
