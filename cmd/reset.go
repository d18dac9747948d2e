package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagResetExpensesOnly bool
	flagResetYes          bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a user's spending",
	Long: "Reset zeroes income and clears all expenses for the selected user; limits are kept.\n" +
		"With --expenses-only, income and limits are kept and only expenses are cleared.\n" +
		"There is no automatic time-based reset; this command is the only way data is cleared.",
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetExpensesOnly, "expenses-only", false, "Clear expenses but keep income and limits")
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Confirm the reset")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !flagResetYes {
		return fmt.Errorf("reset cannot be undone; re-run with --yes to confirm")
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

	if flagResetExpensesOnly {
		if _, err := app.service.ResetExpenses(ctx, user); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared all expenses for %s. Income and limits are kept.\n", user)
		return nil
	}

	if _, err := app.service.ResetSpending(ctx, user); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reset income and expenses for %s. Limits are kept.\n", user)
	return nil
}
