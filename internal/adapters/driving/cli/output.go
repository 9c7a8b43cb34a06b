package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want text, json or yaml)", domain.ErrInvalidInput, format)
	}
}

// writeStructured prints v as JSON or YAML.
func writeStructured(cmd *cobra.Command, format string, v any) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		cmd.Println(string(data))
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		cmd.Print(string(data))
	default:
		return validateFormat(format)
	}
	return nil
}

// pillarTable renders the four pillars as bordered columns.
func pillarTable(c domain.FourPillars) string {
	pillars := c.Pillars()
	row := func(label string, cell func(domain.Pillar) string) []string {
		cells := []string{label}
		for _, p := range pillars {
			cells = append(cells, cell(p))
		}
		return cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Headers("", "Year 年", "Month 月", "Day 日", "Hour 时").
		Row(row("Pillar", domain.Pillar.String)...).
		Row(row("Stem", func(p domain.Pillar) string { return p.Stem.Name() })...).
		Row(row("Branch", func(p domain.Pillar) string { return p.Branch.Name() })...).
		Row(row("Pinyin", domain.Pillar.Pinyin)...)

	return t.String()
}

// printChart writes the text form of a chart record.
func printChart(cmd *cobra.Command, record *domain.ChartRecord) {
	c := record.Chart
	in := c.Birth.Input

	cmd.Printf("八字 (%s): %s\n\n", c.Gender.Chinese(), c.FullBaZi())
	cmd.Println(pillarTable(c))
	cmd.Println()
	cmd.Printf("Born:       %s %02d:00 (%s)\n", in.Date, in.Hour, c.Birth.ShiChen)
	cmd.Printf("Day master: %s (%s)\n", c.Day.Stem.Name(), polarity(c.Day.Stem))
	if c.Birth.DayRolledOver {
		cmd.Printf("Day pillar: taken from %s (birth after 23:00)\n", c.Birth.DayPillarDate)
	}
	if record.Label != "" {
		cmd.Printf("Label:      %s\n", record.Label)
	}
	if record.ID != "" {
		cmd.Printf("Saved:      %s\n", record.ID)
	}
}

// polarity names the yin or yang side of a stem.
func polarity(s domain.Stem) string {
	if s.IsYang() {
		return "yang"
	}
	return "yin"
}

// shortID trims a uuid for table display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
