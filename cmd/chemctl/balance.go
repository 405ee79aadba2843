package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/service"
)

func newBalanceCmd() *cobra.Command {
	var examples bool

	cmd := &cobra.Command{
		Use:   "balance <reactants> <products>",
		Short: "Balance a chemical equation",
		Example: `  chemctl balance "H2 + O2" "H2O"
  chemctl balance --examples`,
		Args: func(cmd *cobra.Command, args []string) error {
			if examples {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			balancer := service.NewBalancerService()
			out := cmd.OutOrStdout()

			if examples {
				for _, ex := range balancer.Examples() {
					fmt.Fprintf(out, "%-20s %s → %s\n", ex.Label, ex.Reactants, ex.Products)
				}
				return nil
			}

			result, err := balancer.Balance(args[0], args[1])
			if err != nil {
				return err
			}
			printBalance(out, result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&examples, "examples", false, "list the example reactions")
	return cmd
}

func printBalance(out io.Writer, r *model.BalanceResult) {
	fmt.Fprintf(out, "Balanced equation: %s\n", r.Equation)
	if r.Message != "" {
		fmt.Fprintf(out, "Note: %s\n", r.Message)
	}
	fmt.Fprintf(out, "Reactants: %s\n", atomsLine(r.Reactants))
	fmt.Fprintf(out, "Products:  %s\n", atomsLine(r.Products))
}

func atomsLine(side []model.CompoundAtoms) string {
	parts := make([]string, 0, len(side))
	for _, c := range side {
		symbols := make([]string, 0, len(c.Atoms))
		for s := range c.Atoms {
			symbols = append(symbols, s)
		}
		sort.Strings(symbols)

		counts := make([]string, len(symbols))
		for i, s := range symbols {
			counts[i] = fmt.Sprintf("%s=%d", s, c.Atoms[s])
		}
		parts = append(parts, fmt.Sprintf("%s [%s]", c.Formula, strings.Join(counts, " ")))
	}
	return strings.Join(parts, ", ")
}
