package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
)

var (
	chartGender string
	chartDate   string
	chartHour   int
	chartSave   bool
	chartLabel  string
	chartFormat string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute a Four Pillars chart",
	Long: `Compute the year, month, day and hour pillars for a birth.

Births at 23:00 or later take their day pillar from the following day.

Examples:
  sizhu chart --gender male --date 1984-11-23 --hour 23
  sizhu chart --gender 女 --date 1989-11-23 --hour 20 --save --label mum
  sizhu chart -g f -d 1981-06-17 -H 14 --format json`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	addBirthFlags(chartCmd, &chartGender, &chartDate, &chartHour)
	for _, name := range []string{"gender", "date", "hour"} {
		_ = chartCmd.MarkFlagRequired(name) //nolint:errcheck // flag registered above
	}
	chartCmd.Flags().BoolVar(&chartSave, "save", false, "save the chart to history")
	chartCmd.Flags().StringVar(&chartLabel, "label", "", "name to save the chart under")
	chartCmd.Flags().StringVarP(&chartFormat, "format", "o", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(chartCmd)
}

// addBirthFlags registers the gender, date and hour flags.
func addBirthFlags(cmd *cobra.Command, gender, date *string, hour *int) {
	cmd.Flags().StringVarP(gender, "gender", "g", "", "male or female (m, f, 男, 女 also accepted)")
	cmd.Flags().StringVarP(date, "date", "d", "", "birth date as YYYY-MM-DD")
	cmd.Flags().IntVarP(hour, "hour", "H", 0, "hour of birth, 0-23")
}

// birthRequest builds a chart request from flag values.
// Gender is parsed first so errors are reported in gender, date, hour order.
func birthRequest(gender, date string, hour int) (driving.ChartRequest, error) {
	if _, err := domain.ParseGender(gender); err != nil {
		return driving.ChartRequest{}, err
	}
	d, err := domain.ParseCivilDate(date)
	if err != nil {
		return driving.ChartRequest{}, err
	}
	return driving.ChartRequest{
		Gender:  gender,
		Year:    d.Year,
		Month:   d.Month,
		Day:     d.Day,
		Hour:    hour,
		Subject: subject,
	}, nil
}

func runChart(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(chartFormat); err != nil {
		return err
	}
	svc, err := requireChartService()
	if err != nil {
		return err
	}

	req, err := birthRequest(chartGender, chartDate, chartHour)
	if err != nil {
		return calculateError(err)
	}
	req.Save = chartSave
	req.Label = chartLabel

	record, err := svc.Calculate(cmd.Context(), req)
	if err != nil {
		return calculateError(err)
	}

	if chartFormat != formatText {
		if record.ID == "" {
			return writeStructured(cmd, chartFormat, record.Chart)
		}
		return writeStructured(cmd, chartFormat, record)
	}

	printChart(cmd, record)
	return nil
}

// calculateError separates rejected birth input from failures of the service.
func calculateError(err error) error {
	if domain.IsBirthInputError(err) {
		return fmt.Errorf("invalid birth input: %w", err)
	}
	return fmt.Errorf("chart failed: %w", err)
}
