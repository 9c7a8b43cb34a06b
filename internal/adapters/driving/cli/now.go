package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

var (
	nowAt     string
	nowFormat string
)

// clock is replaced in tests.
var clock = time.Now

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show the pillars of the current moment",
	Long: `Print the year, month, day and hour pillars of the current local time,
for example:

  2025年 乙巳年 丁亥月 辛卯日 丁酉时

Use --at to evaluate another instant (RFC 3339, e.g. 2025-11-18T17:30:00+08:00).`,
	Args: cobra.NoArgs,
	RunE: runNow,
}

func init() {
	nowCmd.Flags().StringVar(&nowAt, "at", "", "RFC 3339 instant to evaluate instead of now")
	nowCmd.Flags().StringVarP(&nowFormat, "format", "o", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(nowCmd)
}

func runNow(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(nowFormat); err != nil {
		return err
	}
	svc, err := requireChartService()
	if err != nil {
		return err
	}

	t := clock()
	if nowAt != "" {
		t, err = time.Parse(time.RFC3339, nowAt)
		if err != nil {
			return fmt.Errorf("%w: --at must be RFC 3339: %q", domain.ErrInvalidInput, nowAt)
		}
	}

	m := svc.Now(cmd.Context(), t)
	if nowFormat != formatText {
		return writeStructured(cmd, nowFormat, m)
	}

	cmd.Println(m.String())
	return nil
}
