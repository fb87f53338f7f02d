package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pawprint/labresolve/internal/model"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage the canonical item catalog",
	}

	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogAddCmd())
	cmd.AddCommand(catalogShowCmd())

	return cmd
}

func catalogListCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List canonical items in a scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			scope := scopeFor(userID)
			items, err := store.ItemsForScope(ctx, scope)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Printf("No items in scope %s\n", scope.Key())
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "NAME\tDISPLAY NAME\tUNIT\tEXAM TYPE\tSOURCE\tORGAN TAGS")
			for _, item := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					item.Name, item.DisplayName, item.DefaultUnit, item.ExamType,
					item.Source, strings.Join(item.OrganTags, ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "list this user's overlay items instead of the global catalog")

	return cmd
}

func catalogAddCmd() *cobra.Command {
	var (
		userID      string
		displayName string
		defaultUnit string
		examType    string
		organTags   []string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add or update a canonical item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine := initEngine(store)
			scope := scopeFor(userID)

			draft := &model.CanonicalItem{
				Name:        args[0],
				DisplayName: displayName,
				DefaultUnit: defaultUnit,
				ExamType:    model.ExamType(examType),
				OrganTags:   organTags,
			}
			if draft.DisplayName == "" {
				draft.DisplayName = draft.Name
			}

			item, err := engine.RegisterNewItem(ctx, draft, scope)
			if err != nil {
				return err
			}

			fmt.Printf("Saved %s (%s) in scope %s\n", item.Name, item.ID, scope.Key())
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "add to this user's overlay instead of the global catalog")
	cmd.Flags().StringVar(&displayName, "display-name", "", "human-readable name (defaults to the item name)")
	cmd.Flags().StringVar(&defaultUnit, "unit", "", "default reporting unit")
	cmd.Flags().StringVar(&examType, "exam-type", string(model.ExamTypeBiochemistry), "exam type (biochemistry, hematology)")
	cmd.Flags().StringSliceVar(&organTags, "organ-tags", nil, "organ system tags")

	return cmd
}

func catalogShowCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show one canonical item, overlay first then global",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			item, err := store.GetItemByName(ctx, args[0], scopeFor(userID))
			if err != nil {
				return err
			}

			fmt.Printf("Name:         %s\n", item.Name)
			fmt.Printf("Display name: %s\n", item.DisplayName)
			fmt.Printf("ID:           %s\n", item.ID)
			fmt.Printf("Default unit: %s\n", item.DefaultUnit)
			fmt.Printf("Exam type:    %s\n", item.ExamType)
			fmt.Printf("Source:       %s\n", item.Source)
			fmt.Printf("Organ tags:   %s\n", strings.Join(item.OrganTags, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "consult this user's overlay before the global catalog")

	return cmd
}
