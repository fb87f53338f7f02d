package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "convert [analyte] [value] [unit]",
		Short: "Convert a measured value into the analyte's standard unit",
		Long: `Convert a measured value from the given unit into the analyte's
standard unit using the built-in rule table. With --reverse, the value is
treated as a standard-unit measurement and converted back into the given
unit instead.`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			analyte := args[0]
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}
			unit := args[2]

			table, err := initRuleTable()
			if err != nil {
				return err
			}

			if reverse {
				outcome := table.ReverseConvert(analyte, value, unit)
				if !outcome.Success {
					return outcome.Err
				}
				fmt.Printf("%s: %g (standard) = %g %s  (%s)\n",
					analyte, value, outcome.ConvertedValue, outcome.StandardUnit, outcome.Formula)
				return nil
			}

			outcome := table.Convert(analyte, value, unit)
			if !outcome.Success {
				return outcome.Err
			}
			fmt.Printf("%s: %g %s = %g %s  (%s)\n",
				analyte, value, unit, outcome.ConvertedValue, outcome.StandardUnit, outcome.Formula)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "convert from the standard unit back into the given unit")

	return cmd
}
