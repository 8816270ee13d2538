// Command lexctl runs the fulfillment hook locally: replay a saved event,
// quote prices and inspect the fulfillment journal.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lexctl",
		Short:         "Local tooling for the lexhook fulfillment webhook",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInvokeCmd(), newPriceCmd(), newJournalCmd())
	return root
}
