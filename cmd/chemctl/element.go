package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/service"
)

func newElementCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "element <symbol|number|search>",
		Short: "Show an element, or list the elements matching a search",
		Example: `  chemctl element Fe
  chemctl element 79
  chemctl element --category noble-gas`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periodic := service.NewPeriodicService(dataset.Elements())
			out := cmd.OutOrStdout()

			if len(args) == 1 && category == "" {
				if e, err := periodic.Lookup(args[0]); err == nil {
					d, err := periodic.Details(e.Number)
					if err != nil {
						return err
					}
					printElement(out, d)
					return nil
				}
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			matches := periodic.Filter(query, category)
			if len(matches) == 0 {
				return fmt.Errorf("no element matches %q", query)
			}
			printElements(out, matches)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "restrict to one category, e.g. transition-metal")
	return cmd
}

func printElement(out io.Writer, d *model.ElementDetails) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%s)\n\n", d.Name, d.Symbol)
	fmt.Fprintf(tw, "Atomic number\t%d\n", d.Number)
	fmt.Fprintf(tw, "Atomic mass\t%s u\n", strconv.FormatFloat(d.Mass, 'f', -1, 64))
	fmt.Fprintf(tw, "Category\t%s\n", d.CategoryLabel)
	fmt.Fprintf(tw, "Group\t%s\n", d.Group)
	fmt.Fprintf(tw, "Period\t%d\n", d.Period)
	fmt.Fprintf(tw, "State at 25 °C\t%s\n", d.State)
	fmt.Fprintf(tw, "Electron configuration\t%s\n", d.ElectronConfig)
	fmt.Fprintf(tw, "Electron shells\t%s\n", d.ElectronShells)
	fmt.Fprintf(tw, "Electronegativity\t%s\n", d.ElectronegativityText())
	fmt.Fprintf(tw, "Oxidation states\t%s\n", d.OxidationStates)
	fmt.Fprintf(tw, "Melting point\t%s\n", measure(d.MeltingPoint, " °C"))
	fmt.Fprintf(tw, "Boiling point\t%s\n", measure(d.BoilingPoint, " °C"))
	fmt.Fprintf(tw, "Density\t%s\n", measure(d.Density, " g/cm³"))
	if d.Discovery != "" {
		fmt.Fprintf(tw, "Discovered\t%s\n", d.Discovery)
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "\n%s\n", d.Description)
}

func printElements(out io.Writer, elements []model.Element) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NO\tSYMBOL\tNAME\tCATEGORY")
	for _, e := range elements {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Number, service.Label(e), e.Name, service.CategoryLabel(e.Category))
	}
	_ = tw.Flush()
}

func measure(v *float64, unit string) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}
