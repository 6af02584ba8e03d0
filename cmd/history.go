package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/langcoach/internal/library"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect finished games",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List finished games, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		return withLibrary(cmd, func(lib *library.Library) error {
			games := library.FilterGames(lib.Games(context.Background()), search)
			out := cmd.OutOrStdout()
			if len(games) == 0 {
				fmt.Fprintln(out, "No games found.")
				return nil
			}

			fmt.Fprintf(out, "%-36s  %-16s  %-24s  %-24s  %s\n", "ID", "Date", "Title", "Topic", "Score")
			fmt.Fprintln(out, strings.Repeat("─", 116))
			for _, g := range games {
				fmt.Fprintf(out, "%-36s  %-16s  %-24s  %-24s  %d/%d\n",
					g.ID,
					g.Time().Local().Format("2006-01-02 15:04"),
					truncate(library.Title(g.FormData), 24),
					truncate(g.FormData.TopicOrDefault(), 24),
					g.Score, g.Blanks(),
				)
			}
			return nil
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the graded review of a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(cmd, func(lib *library.Library) error {
			g, ok := lib.Game(context.Background(), args[0])
			if !ok {
				return fmt.Errorf("game %s not found", args[0])
			}
			out := cmd.OutOrStdout()
			form := g.FormData
			fmt.Fprintf(out, "Language:    %s\n", form.ExerciseLanguage)
			fmt.Fprintf(out, "Difficulty:  %s (%s)\n", form.Difficulty, form.Difficulty.Label())
			fmt.Fprintf(out, "Topic:       %s\n", form.TopicOrDefault())
			fmt.Fprintf(out, "Date:        %s\n\n", g.Time().Local().Format("2006-01-02 15:04"))
			printReview(out, g)
			return nil
		})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(cmd, func(lib *library.Library) error {
			ctx := context.Background()
			if _, ok := lib.Game(ctx, args[0]); !ok {
				return fmt.Errorf("game %s not found", args[0])
			}
			if _, err := lib.DeleteGame(ctx, args[0]); err != nil {
				return fmt.Errorf("delete game: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted game %s.\n", args[0])
			return nil
		})
	},
}

func init() {
	historyListCmd.Flags().StringP("search", "s", "", "Filter by topic, language or level")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
