package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pawprint/labresolve/internal/units"
)

func unitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Inspect unit normalization and conversion rules",
	}

	cmd.AddCommand(unitsNormalizeCmd())
	cmd.AddCommand(unitsRulesCmd())

	return cmd
}

func unitsNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [unit]",
		Short: "Normalize a unit string to its canonical form",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			fmt.Println(units.NormalizeUnit(args[0]))
		},
	}
}

func unitsRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the analytes with conversion rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			table, err := initRuleTable()
			if err != nil {
				return err
			}

			analytes := table.Analytes()
			sort.Strings(analytes)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ANALYTE\tSTANDARD UNIT\tCONVERTIBLE FROM")
			for _, analyte := range analytes {
				rule, ok := table.RuleFor(analyte)
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t", rule.Analyte, rule.StandardUnit)
				for i, e := range rule.Entries {
					if i > 0 {
						fmt.Fprint(w, ", ")
					}
					fmt.Fprint(w, e.Unit)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
}
