// Command strategist inspects the strategy registry and resolves query keys
// against it. Strategy types register themselves when their package is
// imported; the commands only read the resulting registry.
package main

import (
	"os"

	"github.com/mfulz/strategist/cmd/strategist/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
