package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symcalc"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List accepted functions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := pterm.TableData{{"Function", "Parameters"}}
		for i, name := range symcalc.Functions {
			lo, hi := symcalc.Function(i).Arity()
			p := strconv.Itoa(lo)
			if hi != lo {
				p += "–" + strconv.Itoa(hi)
			}
			data = append(data, []string{name, p})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "List accepted constants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := pterm.TableData{{"Symbol", "Backend name", "Description"}}
		for _, c := range symcalc.Constants {
			data = append(data, []string{string(c.Symbol), c.Name, c.Description})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}
