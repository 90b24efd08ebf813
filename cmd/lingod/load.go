package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/simfra/lingod/internal/ui"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:     "load <locale> <group>",
	Short:   "Fetch a locale's group the way runtime consumers do",
	GroupID: "runtime",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := lingo.Load(context.Background(), args[0], args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(items)
			return nil
		}

		keys := make([]string, 0, len(items))
		for k := range items {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%s\n", k, ui.RenderValue(items[k]))
		}
		return w.Flush()
	},
}
