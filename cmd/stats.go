package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/langcoach/internal/library"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics from history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(cmd, func(lib *library.Library) error {
			s := computeStats(lib.Games(context.Background()))
			out := cmd.OutOrStdout()
			if s.Games == 0 {
				fmt.Fprintln(out, "No games played yet.")
				return nil
			}
			fmt.Fprintf(out, "Games played:      %d\n", s.Games)
			fmt.Fprintf(out, "Exercises:         %d\n", s.Exercises)
			fmt.Fprintf(out, "Blanks answered:   %d/%d\n", s.Correct, s.Blanks)
			fmt.Fprintf(out, "Accuracy:          %.1f%%\n", s.Accuracy())
			fmt.Fprintf(out, "Avg per exercise:  %.1fs\n", s.AvgTime())
			if len(s.ByLanguage) > 0 {
				fmt.Fprintln(out)
				for _, l := range s.ByLanguage {
					fmt.Fprintf(out, "  %-20s  %3d games  %d/%d\n", l.Language, l.Games, l.Correct, l.Blanks)
				}
			}
			return nil
		})
	},
}

type historyStats struct {
	Games      int
	Exercises  int
	Blanks     int
	Correct    int
	TotalTime  float64
	ByLanguage []languageStats
}

type languageStats struct {
	Language string
	Games    int
	Blanks   int
	Correct  int
}

// Accuracy is the percentage of correct blanks.
func (s historyStats) Accuracy() float64 {
	if s.Blanks == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Blanks)
}

// AvgTime is the mean seconds spent per exercise.
func (s historyStats) AvgTime() float64 {
	if s.Exercises == 0 {
		return 0
	}
	return s.TotalTime / float64(s.Exercises)
}

// computeStats aggregates games. Languages keep the order of their most
// recent game.
func computeStats(games []library.GameRecord) historyStats {
	var s historyStats
	index := make(map[string]int)
	for _, g := range games {
		s.Games++
		s.Exercises += len(g.Exercises)
		s.Blanks += g.Blanks()
		s.Correct += g.Score
		s.TotalTime += g.TotalTime

		lang := g.FormData.ExerciseLanguage
		i, ok := index[lang]
		if !ok {
			i = len(s.ByLanguage)
			index[lang] = i
			s.ByLanguage = append(s.ByLanguage, languageStats{Language: lang})
		}
		s.ByLanguage[i].Games++
		s.ByLanguage[i].Blanks += g.Blanks()
		s.ByLanguage[i].Correct += g.Score
	}
	return s
}
