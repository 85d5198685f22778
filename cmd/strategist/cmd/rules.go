package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfulz/strategist/internal/strategies"
	"github.com/mfulz/strategist/matchkey"
)

var rulesOutput string

// RulesCmd lists the registered rules.
var RulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List registered strategy rules",
	Long: `Lists every registered rule with the handler type that owns it.

With --output yaml the rules are written as a YAML stream that lookup -f
accepts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := strategies.Registry.Entries()
		out := cmd.OutOrStdout()

		switch rulesOutput {
		case "text":
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tCATEGORY\tKEY")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Type.Name, e.Key.Category(), matchkey.Format(e.Key))
			}
			return w.Flush()
		case "yaml":
			for _, e := range entries {
				data, err := matchkey.Encode(e.Key)
				if err != nil {
					return fmt.Errorf("encode rule %s: %w", e.Type.Name, err)
				}
				fmt.Fprintf(out, "--- # %s\n%s", e.Type.Name, data)
			}
			return nil
		default:
			return fmt.Errorf("unknown output format: %s", rulesOutput)
		}
	},
}

func init() {
	RulesCmd.Flags().StringVarP(&rulesOutput, "output", "o", "text", "Output format: text or yaml")
}
