package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finhealth/internal/catalog"
	"finhealth/internal/model"
	"finhealth/internal/scoring"
	"finhealth/internal/service"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var (
		answersFile string
		format      string
		details     bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an answers file and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			answers, err := readAnswers(cmd.InOrStdin(), answersFile)
			if err != nil {
				return err
			}

			c := catalog.Default()
			if err := service.ValidateAnswers(c, answers); err != nil {
				return err
			}

			engine, err := scoring.NewEngine(c,
				scoring.WithWeights(opts.tables.Weights),
				scoring.WithThresholds(opts.tables.Thresholds),
			)
			if err != nil {
				return err
			}

			result := engine.Assess(answers)
			opts.logger.Debug("scored answers",
				zap.Int("answered", len(answers)),
				zap.Float64("fri", result.Indexes.FRI))

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			if details {
				fmt.Fprintln(out, service.FormatAnswers(c, answers))
			}
			fmt.Fprintln(out, service.FormatSummary(c, &result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&answersFile, "answers", "a", "-", "Answers JSON file, - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&details, "details", false, "Also print every question with its answer")
	return cmd
}

func readAnswers(stdin io.Reader, path string) (model.AnswerStore, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	answers := model.AnswerStore{}
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return answers, nil
}
