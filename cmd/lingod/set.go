package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:     "set <lang> <key> <value>",
	Short:   "Create or update a translation",
	GroupID: "translations",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := lingo.Upsert(context.Background(), args[0], args[1], args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(t)
		} else {
			printTranslation(t)
		}
		return nil
	},
}
