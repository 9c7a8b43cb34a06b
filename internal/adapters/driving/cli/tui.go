package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui"
)

// newProgram is replaced in tests.
var newProgram = func(model tea.Model, opts ...tea.ProgramOption) interface{ Run() (tea.Model, error) } {
	return tea.NewProgram(model, opts...)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive chart form",
	Long: `Launch an interactive form for computing Four Pillars charts.

Controls:
  tab/↓, shift+tab/↑ - Move between fields
  enter              - Compute the chart
  ctrl+s             - Compute and save to history
  ctrl+r             - Clear the form
  esc, ctrl+c        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	app, err := tui.NewApp(&tui.Ports{
		Chart:   chartService,
		Subject: subject,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := newProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
