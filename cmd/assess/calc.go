package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"finhealth/internal/calculator"
)

func newCalcCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calc [name] [amount]",
		Short: "List tax calculators or apply one to an amount",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := calculator.NewRegistry(opts.tables.Calculators)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch len(args) {
			case 0:
				for _, info := range registry.List() {
					fmt.Fprintf(out, "%-12s %-20s %.2f%%\n", info.Name, info.Label, info.Rate*100)
				}
				return nil
			case 1:
				return fmt.Errorf("amount is required")
			}

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			calc, err := registry.Calculate(args[0], amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "amount %.2f\ntax    %.2f (%s @ %.2f%%)\ntotal  %.2f\n",
				calc.Amount, calc.Tax, calc.Calculator, calc.Rate*100, calc.Total)
			return nil
		},
	}
}
