package cmd

import (
	"fmt"

	"github.com/Caden-Dane/cadenbudget/internal/cli"
	"github.com/Caden-Dane/cadenbudget/internal/core"
	"github.com/Caden-Dane/cadenbudget/internal/view"

	"github.com/spf13/cobra"
)

var incomeCmd = &cobra.Command{
	Use:   "income <amount>",
	Short: "Add income to a user's budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncome,
}

func init() {
	rootCmd.AddCommand(incomeCmd)
}

func runIncome(cmd *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[0])
	if err != nil || !core.ValidAmount(amount) {
		return fmt.Errorf("income amount %q: must be a number greater than 0", args[0])
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

	doc, err := app.service.AddIncome(ctx, user, amount)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s income for %s. Remaining balance: %s\n",
		cli.FormatCurrency(amount), user, cli.FormatCurrency(view.Remaining(doc)))
	return nil
}
