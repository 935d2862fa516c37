package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/allocrun/allocrun/internal/rules"
)

// rulesCmd lists the registered allocation rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List registered allocation rules",
	Long: `List every registered allocation rule with its required input series and
its parameter defaults.`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tSERIES\tPARAMETERS\tDESCRIPTION")

	for _, def := range rules.All() {
		params, err := rules.DecodeParams(def, nil)
		if err != nil {
			return fmt.Errorf("defaults for rule %q: %w", def.Name, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			def.Name,
			formatSeries(def.Series),
			formatParams(params),
			def.Description,
		)
	}
	return w.Flush()
}

func formatSeries(series []string) string {
	if len(series) == 0 {
		return "-"
	}
	return strings.Join(series, ",")
}

func formatParams(params any) string {
	data, err := yaml.Marshal(params)
	if err != nil {
		return "-"
	}
	out := strings.TrimSpace(string(data))
	if out == "{}" {
		return "-"
	}
	return strings.ReplaceAll(out, "\n", " ")
}
