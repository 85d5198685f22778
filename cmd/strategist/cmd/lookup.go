package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfulz/strategist/internal/logging"
	"github.com/mfulz/strategist/internal/strategies"
	"github.com/mfulz/strategist/matchkey"
)

var (
	keyFile string
	dryRun  bool
)

// LookupCmd resolves query keys and runs the matching strategies.
var LookupCmd = &cobra.Command{
	Use:   "lookup [key...]",
	Short: "Resolve query keys against the strategy rules",
	Long: `Resolves each query key and runs BeforeAttack on every matching strategy.

Keys are YAML mappings with a category entry; omitted fields are wildcards.

Examples:
  strategist lookup '{category: char, char_id: 1, ai_level: 2}'
  strategist lookup -f queries.yaml
  strategist rules -o yaml | strategist lookup -f - --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := readKeys(cmd, args)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return errors.New("no query keys given")
		}

		out := cmd.OutOrStdout()
		for _, k := range keys {
			if dryRun {
				types := dispatcher.Resolve(k)
				fmt.Fprintf(out, "%s: %d match(es)\n", matchkey.Format(k), len(types))
				for _, t := range types {
					fmt.Fprintf(out, "  %s\n", t.Name)
				}
				continue
			}

			found := dispatcher.Lookup(k)
			fmt.Fprintf(out, "%s: %d match(es)\n", matchkey.Format(k), len(found))
			for _, s := range found {
				fmt.Fprintf(out, "  %s\n", strategyName(s))
				s.BeforeAttack()
			}
		}
		return nil
	},
}

func init() {
	LookupCmd.Flags().StringVarP(&keyFile, "file", "f", "", "Read query keys from a YAML file (- for stdin)")
	LookupCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only list matching strategy types")
}

func readKeys(cmd *cobra.Command, args []string) ([]matchkey.Key, error) {
	var keys []matchkey.Key
	for _, arg := range args {
		k, err := matchkey.Decode([]byte(arg))
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", arg, err)
		}
		keys = append(keys, k)
	}

	if keyFile == "" {
		return keys, nil
	}

	var r io.Reader = cmd.InOrStdin()
	if keyFile != "-" {
		f, err := os.Open(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open key file: %w", err)
		}
		defer f.Close()
		r = f
	}

	fromFile, err := matchkey.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("invalid key file %s: %w", keyFile, err)
	}
	logging.Log.Debugf("[strategist] read %d keys from %s", len(fromFile), keyFile)
	return append(keys, fromFile...), nil
}

func strategyName(s strategies.Strategy) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
