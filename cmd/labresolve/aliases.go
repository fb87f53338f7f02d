package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func aliasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "Inspect and manage item aliases",
	}

	cmd.AddCommand(aliasesListCmd())
	cmd.AddCommand(aliasesAddCmd())
	cmd.AddCommand(aliasesRemoveCmd())

	return cmd
}

func aliasesListCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List aliases in a scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			scope := scopeFor(userID)
			aliases, err := store.AliasesForScope(ctx, scope)
			if err != nil {
				return err
			}

			if len(aliases) == 0 {
				fmt.Printf("No aliases in scope %s\n", scope.Key())
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ALIAS\tCANONICAL\tSOURCE HINT")
			for _, alias := range aliases {
				fmt.Fprintf(w, "%s\t%s\t%s\n", alias.Text, alias.ItemName, alias.SourceHint)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "list this user's aliases instead of the global ones")

	return cmd
}

func aliasesAddCmd() *cobra.Command {
	var (
		userID     string
		sourceHint string
	)

	cmd := &cobra.Command{
		Use:   "add [alias text] [canonical name]",
		Short: "Map an alias to a canonical item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine := initEngine(store)
			scope := scopeFor(userID)

			if err := engine.RegisterAlias(ctx, args[0], args[1], sourceHint, scope); err != nil {
				return err
			}

			fmt.Printf("Aliased %q to %s in scope %s\n", args[0], args[1], scope.Key())
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "add to this user's overlay instead of the global catalog")
	cmd.Flags().StringVar(&sourceHint, "source-hint", "", "lab vendor or machine the alias comes from")

	return cmd
}

func aliasesRemoveCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "remove [alias text]",
		Short: "Remove an alias from a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			scope := scopeFor(userID)
			if err := store.DeleteAlias(ctx, args[0], scope); err != nil {
				return err
			}

			fmt.Printf("Removed alias %q from scope %s\n", args[0], scope.Key())
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "remove from this user's overlay instead of the global catalog")

	return cmd
}
