package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/screener/backtest"
)

var strategiesJSON bool

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the supported strategies and their parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := backtest.ListStrategies()
		out := cmd.OutOrStdout()
		if strategiesJSON {
			return writeJSON(out, map[string]any{"strategies": list})
		}
		for _, s := range list {
			fmt.Fprintf(out, "%-14s %s\n", s.ID, s.Name)
			fmt.Fprintf(out, "%-14s %s\n", "", s.Description)
			fmt.Fprintf(out, "%-14s params: %s\n\n", "", strings.Join(s.Params, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
	strategiesCmd.Flags().BoolVar(&strategiesJSON, "json", false, "print as JSON")
}
