package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/langcoach/internal/library"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Inspect saved request templates",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		return withLibrary(cmd, func(lib *library.Library) error {
			favs := library.FilterFavorites(lib.Favorites(context.Background()), search)
			out := cmd.OutOrStdout()
			if len(favs) == 0 {
				fmt.Fprintln(out, "No favorites found.")
				return nil
			}

			fmt.Fprintf(out, "%-36s  %-16s  %-24s  %-24s  %-9s  %s\n", "ID", "Date", "Title", "Topic", "Provider", "Total")
			fmt.Fprintln(out, strings.Repeat("─", 124))
			for _, f := range favs {
				fmt.Fprintf(out, "%-36s  %-16s  %-24s  %-24s  %-9s  %d\n",
					f.ID,
					f.Time().Local().Format("2006-01-02 15:04"),
					truncate(library.Title(f.FormData), 24),
					truncate(f.FormData.TopicOrDefault(), 24),
					f.FormData.Provider,
					f.FormData.Total,
				)
			}
			return nil
		})
	},
}

var favoritesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(cmd, func(lib *library.Library) error {
			ctx := context.Background()
			found := false
			for _, f := range lib.Favorites(ctx) {
				if f.ID == args[0] {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("favorite %s not found", args[0])
			}
			if _, err := lib.DeleteFavorite(ctx, args[0]); err != nil {
				return fmt.Errorf("delete favorite: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted favorite %s.\n", args[0])
			return nil
		})
	},
}

func init() {
	favoritesListCmd.Flags().StringP("search", "s", "", "Filter by topic, language or level")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesDeleteCmd)
}
