package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved charts",
	Long: `List, show, or delete charts saved with 'sizhu chart --save'.

Use the global --subject flag to restrict the list to one subject.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved charts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [chart-id]",
	Short: "Show a saved chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [chart-id]",
	Short: "Delete a saved chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of charts (0 = all)")
	historyCmd.PersistentFlags().StringVarP(&historyFormat, "format", "o", formatText, "output format: text, json or yaml")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(historyFormat); err != nil {
		return err
	}
	svc, err := requireChartService()
	if err != nil {
		return err
	}

	records, err := svc.History(cmd.Context(), subject, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list charts: %w", err)
	}

	if historyFormat != formatText {
		if records == nil {
			records = []domain.ChartRecord{}
		}
		return writeStructured(cmd, historyFormat, records)
	}

	if len(records) == 0 {
		cmd.Println("No saved charts.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Headers("ID", "Subject", "Label", "Born", "八字", "Saved")
	for i := range records {
		r := records[i]
		in := r.Chart.Birth.Input
		t.Row(
			shortID(r.ID),
			r.Subject,
			r.Label,
			fmt.Sprintf("%s %02d:00 %s", in.Date, in.Hour, r.Chart.Gender.Chinese()),
			r.Chart.FullBaZi(),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	cmd.Println(t.String())
	cmd.Printf("%d chart(s)\n", len(records))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if err := validateFormat(historyFormat); err != nil {
		return err
	}
	svc, err := requireChartService()
	if err != nil {
		return err
	}

	record, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get chart %s: %w", args[0], err)
	}

	if historyFormat != formatText {
		return writeStructured(cmd, historyFormat, record)
	}

	printChart(cmd, record)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	svc, err := requireChartService()
	if err != nil {
		return err
	}

	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete chart %s: %w", args[0], err)
	}

	cmd.Printf("Deleted chart %s\n", args[0])
	return nil
}
