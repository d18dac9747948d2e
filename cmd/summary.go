package cmd

import (
	"fmt"

	"github.com/Caden-Dane/cadenbudget/internal/cli"
	"github.com/Caden-Dane/cadenbudget/internal/view"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the budget summary for a user",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.user()
	if err != nil {
		return err
	}

	ctx, cancel := app.opContext(cmd.Context())
	defer cancel()

	doc, err := app.service.Load(ctx, user)
	if err != nil {
		return err
	}

	sum := view.BuildSummary(doc)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.RenderTitle("Budget — "+user))
	fmt.Fprintln(out)

	remaining := cli.FormatCurrency(sum.Remaining)
	if sum.Remaining < 0 {
		remaining = cli.DangerStyle.Render(remaining)
	} else {
		remaining = cli.PositiveStyle.Render(remaining)
	}
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   "Summary",
		Headers: []string{"Total Income", "Total Expenses", "Remaining"},
		Rows: [][]string{{
			cli.FormatCurrency(sum.TotalIncome),
			cli.FormatCurrency(sum.TotalExpenses),
			remaining,
		}},
	}))
	fmt.Fprintln(out)

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   "Categories",
		Headers: []string{"Category", "Spent", "Limit", "Remaining", "Progress"},
		Rows:    categoryRows(sum),
		Empty:   "No categories yet. Add expenses or set limits to begin.",
	}))
	fmt.Fprintln(out)

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   "Expenses",
		Headers: []string{"Date", "Category", "Amount", "Note", "ID"},
		Rows:    expenseRows(sum),
		Empty:   "No expenses recorded.",
	}))

	return nil
}

func categoryRows(sum view.Summary) [][]string {
	rows := make([][]string, 0, len(sum.Categories))
	for _, row := range sum.Categories {
		limit, remaining := "—", "—"
		if row.Limit != nil {
			limit = cli.FormatCurrency(*row.Limit)
			remaining = cli.FormatCurrency(*row.Remaining)
		}
		bar := cli.RenderProgressBar(row.Percent, 12,
			row.Status == view.StatusCaution,
			row.Status == view.StatusExceeded)
		rows = append(rows, []string{
			row.Category,
			cli.FormatCurrency(row.Spent),
			limit,
			remaining,
			bar + " " + cli.FormatPercent(row.Percent),
		})
	}
	return rows
}

func expenseRows(sum view.Summary) [][]string {
	rows := make([][]string, 0, len(sum.Expenses))
	for _, row := range sum.Expenses {
		note := row.Note
		if note == "" {
			note = "—"
		}
		rows = append(rows, []string{
			row.Date,
			row.Category,
			cli.FormatCurrency(row.Amount),
			note,
			row.ID,
		})
	}
	return rows
}
