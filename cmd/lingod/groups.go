package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:     "groups",
	Short:   "List key namespaces",
	GroupID: "translations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := lingo.Groups(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(groups)
			return nil
		}
		for _, g := range groups {
			fmt.Println(g)
		}
		return nil
	},
}
