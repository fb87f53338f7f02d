package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the catalog database schema",
		Long: `Apply any pending schema migrations and seed the built-in global
catalog. Safe to run repeatedly; already-applied migrations are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println("Catalog database is up to date.")
			return nil
		},
	}
}
