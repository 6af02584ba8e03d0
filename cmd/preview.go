package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/generator"
	"github.com/abhisek/langcoach/internal/library"
	"github.com/abhisek/langcoach/internal/llm"
	"github.com/abhisek/langcoach/internal/quiz"
	"github.com/abhisek/langcoach/internal/scoring"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate and play exercises in the terminal (no server, no database)",
	Long: `Generate exercises in-process and answer them line by line.

This is a stateless developer tool: no server, no history, no LLM event log.
Useful for evaluating exercise quality and prompts. Type ? at a blank to
reveal the next hint.`,
	RunE: runPreview,
}

func init() {
	def := exercise.DefaultRequest()
	f := previewCmd.Flags()
	f.String("provider", string(def.Provider), "LLM provider: GROQ, OPENAI, ANTHROPIC or GEMINI")
	f.String("language", def.ExerciseLanguage, "Language of the exercises")
	f.String("explain-in", def.UserLanguage, "Language of explanations and hints")
	f.String("topic", def.Topic, "Exercise topic")
	f.Int("total", 5, "Number of exercises")
	f.String("level", string(def.Difficulty), "CEFR level A1 to C2")
	f.Bool("base-form", def.IncludeBaseForm, "Show the base form next to each blank")
	f.Bool("hints", def.IncludeHints, "Generate hints")
}

func previewRequest(cmd *cobra.Command) (exercise.Request, error) {
	f := cmd.Flags()
	providerVal, _ := f.GetString("provider")
	levelVal, _ := f.GetString("level")

	provider, err := exercise.ParseProvider(providerVal)
	if err != nil {
		return exercise.Request{}, err
	}
	level, err := exercise.ParseDifficulty(levelVal)
	if err != nil {
		return exercise.Request{}, err
	}

	req := exercise.Request{Provider: provider, Difficulty: level}
	req.ExerciseLanguage, _ = f.GetString("language")
	req.UserLanguage, _ = f.GetString("explain-in")
	req.Topic, _ = f.GetString("topic")
	req.Total, _ = f.GetInt("total")
	req.IncludeBaseForm, _ = f.GetBool("base-form")
	req.IncludeHints, _ = f.GetBool("hints")

	if req.Total < exercise.MinTotal || req.Total > exercise.MaxTotal {
		return exercise.Request{}, fmt.Errorf("total must be between %d and %d", exercise.MinTotal, exercise.MaxTotal)
	}
	return req, nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	req, err := previewRequest(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	// No event writer: nothing is recorded.
	ctx := context.Background()
	providers := llm.NewProviders(ctx, cfg.LLM, nil, log)
	gen := generator.New(providers, cfg.Generation, log)
	if !gen.Supports(req.Provider) {
		return fmt.Errorf("provider %s is not configured: set its API key", req.Provider)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s - %s (%s), topic: %s\n", req.ExerciseLanguage, req.Difficulty, req.Difficulty.Label(), req.TopicOrDefault())
	fmt.Fprintf(out, "Generating %d exercises...\n\n", req.Total)

	items, err := gen.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate exercises: %w", err)
	}

	q, err := quiz.New(exercise.FromItems(items), req, nil)
	if err != nil {
		return err
	}
	playLines(q, cmd.InOrStdin(), out)

	printReview(out, q.Record())
	return nil
}

// playLines runs q on a line-based terminal: one prompt per blank.
func playLines(q *quiz.Quiz, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	hintsOn := q.Form().IncludeHints

	for !q.Finished() {
		ex := q.Current()
		fmt.Fprintf(out, "── Exercise %d/%d ──\n", q.Index()+1, q.Len())
		fmt.Fprintln(out, ex.Text)

		for pos := 0; pos < exercise.BlankCount(ex.Text); pos++ {
			for {
				fmt.Fprintf(out, "Blank %d: ", pos+1)
				if !scanner.Scan() {
					fmt.Fprintln(out, "\n(input closed)")
					for !q.Finished() {
						q.Next()
					}
					return
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "?" && hintsOn {
					if h, ok := q.RevealHint(); ok {
						fmt.Fprintf(out, "Hint %d: %s\n", len(q.Hints().Revealed()), h.Hint)
					} else {
						fmt.Fprintln(out, "(no more hints)")
					}
					continue
				}
				q.SetAnswer(pos, line)
				break
			}
		}
		fmt.Fprintln(out)
		q.Next()
	}
}

// printReview writes the graded outcome of a game.
func printReview(out io.Writer, rec library.GameRecord) {
	fmt.Fprintf(out, "Score: %d/%d\n", rec.Score, rec.Blanks())
	fmt.Fprintf(out, "Total time: %.1fs    Average per question: %.1fs\n\n", rec.TotalTime, rec.AvgTime)

	for i, ex := range rec.Exercises {
		fmt.Fprintf(out, "%d. %s\n", i+1, ex.Text)
		var given []string
		if i < len(rec.UserAnswers) {
			given = rec.UserAnswers[i]
		}
		for _, r := range scoring.Review(ex, rec.Answers, given) {
			answer := r.UserAnswer
			if strings.TrimSpace(answer) == "" {
				answer = "No answer"
			}
			mark := "✗"
			if r.Correct {
				mark = "✓"
			}
			fmt.Fprintf(out, "   Blank %d: %s  %s %s\n", r.Position+1, answer, mark, r.Verdict())
			if r.Explanation != "" {
				fmt.Fprintf(out, "      %s\n", r.Explanation)
			}
		}
	}
}
