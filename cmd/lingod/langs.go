package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var langsCmd = &cobra.Command{
	Use:     "langs",
	Short:   "List registered languages",
	GroupID: "translations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		activeOnly, _ := cmd.Flags().GetBool("active")

		langs, err := lingo.Languages(context.Background(), activeOnly)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(langs)
		} else {
			printLanguagesTable(langs)
		}
		return nil
	},
}

func init() {
	langsCmd.Flags().Bool("active", false, "only active languages")
}
