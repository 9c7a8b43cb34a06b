package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

var (
	interpretGender string
	interpretDate   string
	interpretHour   int
	interpretID     string
)

var interpretCmd = &cobra.Command{
	Use:   "interpret [question]",
	Short: "Ask an LLM to read a chart",
	Long: `Compute a chart (or load a saved one with --id) and ask the configured
LLM provider for a reading. Any arguments are sent as the question.

Requires an LLM provider; run 'sizhu settings llm' to configure one.

Examples:
  sizhu interpret -g male -d 1984-11-23 -H 23
  sizhu interpret -g f -d 1981-06-17 -H 14 what suits my career?
  sizhu interpret --id 2f1c0a9e-... how is this year?`,
	RunE: runInterpret,
}

func init() {
	addBirthFlags(interpretCmd, &interpretGender, &interpretDate, &interpretHour)
	interpretCmd.Flags().StringVar(&interpretID, "id", "", "read a saved chart instead of computing one")
	interpretCmd.MarkFlagsRequiredTogether("gender", "date", "hour")
	interpretCmd.MarkFlagsMutuallyExclusive("id", "gender")
	interpretCmd.MarkFlagsOneRequired("id", "gender")
	rootCmd.AddCommand(interpretCmd)
}

func runInterpret(cmd *cobra.Command, args []string) error {
	if interpretService == nil || !interpretService.Available() {
		return fmt.Errorf("%w: run 'sizhu settings llm' to configure a provider", domain.ErrLLMUnavailable)
	}
	svc, err := requireChartService()
	if err != nil {
		return err
	}

	var chart domain.FourPillars
	if interpretID != "" {
		record, err := svc.Get(cmd.Context(), interpretID)
		if err != nil {
			return fmt.Errorf("failed to get chart %s: %w", interpretID, err)
		}
		chart = record.Chart
	} else {
		req, err := birthRequest(interpretGender, interpretDate, interpretHour)
		if err != nil {
			return calculateError(err)
		}
		record, err := svc.Calculate(cmd.Context(), req)
		if err != nil {
			return calculateError(err)
		}
		chart = record.Chart
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	cmd.Printf("八字 (%s): %s\n\n", chart.Gender.Chinese(), chart.FullBaZi())

	reading, err := interpretService.Interpret(cmd.Context(), chart, question)
	if errors.Is(err, domain.ErrRateLimited) {
		return fmt.Errorf("LLM provider is rate limiting requests, try again shortly: %w", err)
	}
	if err != nil {
		return fmt.Errorf("interpretation failed: %w", err)
	}

	cmd.Println(reading)
	return nil
}
