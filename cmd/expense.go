package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Caden-Dane/cadenbudget/internal/cli"
	"github.com/Caden-Dane/cadenbudget/internal/core"
	"github.com/Caden-Dane/cadenbudget/internal/view"

	"github.com/spf13/cobra"
)

var (
	flagExpenseCategory string
	flagExpenseNote     string
	flagExpenseDate     string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Record, list, and delete expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Record a new expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseAdd,
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseDelete,
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", "", "Expense category (required)")
	expenseAddCmd.Flags().StringVarP(&flagExpenseNote, "note", "n", "", "Optional note")
	expenseAddCmd.Flags().StringVarP(&flagExpenseDate, "date", "d", "", "Expense date (YYYY-MM-DD, default today)")
	_ = expenseAddCmd.MarkFlagRequired("category")

	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseDeleteCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[0])
	if err != nil || !core.ValidAmount(amount) {
		return fmt.Errorf("expense amount %q: must be a number greater than 0", args[0])
	}

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

	out := cmd.OutOrStdout()

	// Pre-submit limit proximity check against the current document. The
	// expense is recorded either way, matching the form behavior: the
	// warning informs, it does not block. The category is trimmed here so
	// the check and the recorded expense agree on the category name.
	category := strings.TrimSpace(flagExpenseCategory)
	current, err := app.service.Load(ctx, user)
	if err != nil {
		return err
	}
	if warning := limitWarning(current, category, amount); warning != "" {
		fmt.Fprintln(out, warning)
	}

	doc, expense, err := app.service.AddExpense(ctx, user, category, amount, flagExpenseNote, flagExpenseDate)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Recorded %s for %s on %s (id %s). Remaining balance: %s\n",
		cli.FormatCurrency(expense.Amount), expense.Category, expense.Date, expense.ID,
		cli.FormatCurrency(view.Remaining(doc)))
	return nil
}

// limitWarning returns a rendered caution or exceeded notice for recording
// an expense of the given amount, or "" when the category stays within its
// cap. The category must already be trimmed.
func limitWarning(doc core.BudgetDocument, category string, amount float64) string {
	switch view.Status(doc, category, amount) {
	case view.StatusExceeded:
		return cli.DangerStyle.Render(
			fmt.Sprintf("Warning: this expense exceeds your limit for %s.", category))
	case view.StatusCaution:
		return cli.WarnStyle.Render(
			fmt.Sprintf("Caution: you are close to your limit for %s.", category))
	default:
		return ""
	}
}

func runExpenseDelete(cmd *cobra.Command, args []string) error {
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

	doc, err := app.service.DeleteExpense(ctx, user, args[0])
	if errors.Is(err, core.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "No expense with id %s; nothing deleted.\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %s. Remaining balance: %s\n",
		args[0], cli.FormatCurrency(view.Remaining(doc)))
	return nil
}
