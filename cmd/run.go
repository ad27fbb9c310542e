package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/pipeline"
)

const (
	PromptBack           = "back"
	PromptShowFeedback   = "Show feedback for a job"
	PromptPostingsToFile = "Dump postings to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowFeedback, PromptPostingsToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one search against a resume and print the matches",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("query", "q", "", "natural-language search query")
	runCmd.Flags().StringP("resume", "r", "", "path to the resume file (pdf, txt or md)")
	runCmd.Flags().BoolP("no-interactive", "n", false, "print results and exit without prompting")

	_ = runCmd.MarkFlagRequired("query")
	_ = runCmd.MarkFlagRequired("resume")
}

// run is the one-shot command: a single pipeline pass over one query and
// one resume, results printed to the terminal.
func run(cmd *cobra.Command) {
	ctx := cmd.Context()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobscout run", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	query := cmd.Flag("query").Value.String()
	resumePath := cmd.Flag("resume").Value.String()

	resumeData, err := os.ReadFile(resumePath)
	if err != nil {
		logger.Fatal("reading resume file", zap.Error(err))
	}

	resumeName := filepath.Base(resumePath)

	if err := pipeline.ValidateInput(query, resumeName, resumeData); err != nil {
		logger.Fatal("invalid input", zap.Error(err))
	}

	// The database is optional for one-shot runs; without it the persist
	// step is skipped.
	deps, cleanup, err := newPipelineDeps(ctx, config, logger, false)
	defer cleanup()
	if err != nil {
		logger.Fatal("building pipeline dependencies", zap.Error(err))
	}

	runner := pipeline.NewRunner(logger, pipeline.DefaultSteps(deps)...)

	logger.Info("starting the search", zap.String("query", query))

	state, err := runner.Run(ctx, pipeline.NewSearchState(query, resumeName, resumeData))
	if err != nil {
		if errors.Is(err, pipeline.ErrNoPostings) {
			logger.Info("exiting", zap.String("reason", "no postings found"))
			return
		}
		logger.Fatal("pipeline run failed", zap.Error(err))
	}

	printResults(state)

	if cmd.Flag("no-interactive").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, state, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, state pipeline.SearchState, logger *zap.Logger) error {
	switch action {
	case PromptShowFeedback:
		return showFeedback(state)
	case PromptPostingsToFile:
		filename, err := state.Postings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump postings to file: %w", err)
		}
		logger.Info("dumping postings to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showFeedback(state pipeline.SearchState) error {
	items := make([]string, 0, state.Postings.Len())
	for _, posting := range state.Postings.Items {
		items = append(items, fmt.Sprintf("%s %s [%d/100]",
			posting.ID, posting.Headline(), state.Scores[posting.ID],
		))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append(items, PromptBack),
	}

	for {
		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		id := strings.Split(selected, " ")[0]
		posting := state.Postings.FindByID(id)
		if posting == nil {
			return fmt.Errorf("there is no such posting id %s", id)
		}

		summary := state.Summaries[id]

		fmt.Printf("\n%s\n", posting.Headline())
		fmt.Printf("Score: %d/100\n", state.Scores[id])
		if summary != nil {
			fmt.Printf("Summary: %s\n", summary.Summary)
			fmt.Printf("Required skills: %s\n", strings.Join(summary.RequiredSkills, ", "))
		}
		fmt.Printf("Feedback: %s\n", state.Feedback[id])
		if posting.ApplyURL != "" {
			fmt.Printf("Apply: %s\n", posting.ApplyURL)
		}
		fmt.Println()
	}
}

func printResults(state pipeline.SearchState) {
	fmt.Printf("\nFound %d matching postings for %q:\n\n", state.Postings.Len(), state.Query)
	for _, posting := range state.Postings.Items {
		fmt.Printf("  [%3d/100] %s\n", state.Scores[posting.ID], posting.Headline())
	}
	fmt.Println()
}
