package cmd

import (
	"errors"
	"fmt"

	"github.com/Caden-Dane/cadenbudget/internal/cli"
	"github.com/Caden-Dane/cadenbudget/internal/core"

	"github.com/spf13/cobra"
)

var limitCmd = &cobra.Command{
	Use:   "limit",
	Short: "Set and delete per-category spending limits",
}

var limitSetCmd = &cobra.Command{
	Use:   "set <category> <amount>",
	Short: "Set or overwrite a category's spending limit",
	Args:  cobra.ExactArgs(2),
	RunE:  runLimitSet,
}

var limitDeleteCmd = &cobra.Command{
	Use:   "delete <category>",
	Short: "Remove a category's spending limit (spend history survives)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLimitDelete,
}

func init() {
	limitCmd.AddCommand(limitSetCmd)
	limitCmd.AddCommand(limitDeleteCmd)
	rootCmd.AddCommand(limitCmd)
}

func runLimitSet(cmd *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[1])
	if err != nil || !core.ValidLimit(amount) {
		return fmt.Errorf("limit amount %q: must be a number of 0 or greater", args[1])
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

	if _, err := app.service.SetLimit(ctx, user, args[0], amount); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Limit for %s set to %s\n", args[0], cli.FormatCurrency(amount))
	return nil
}

func runLimitDelete(cmd *cobra.Command, args []string) error {
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

	if _, err := app.service.DeleteLimit(ctx, user, args[0]); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "No limit set for %s; nothing removed.\n", args[0])
			return nil
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Limit for %s removed. Recorded expenses are untouched.\n", args[0])
	return nil
}
