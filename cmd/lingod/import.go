package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simfra/lingod/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:     "import <lang> <file.json>",
	Short:   "Import a translation file, skipping invalid keys",
	GroupID: "translations",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, path := args[0], args[1]
		prefix, _ := cmd.Flags().GetString("key-prefix")

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		resp, err := lingo.Import(context.Background(), lang, prefix, filepath.Base(path), data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}

		fmt.Printf("%d imported, %d skipped for %s\n",
			resp.Imported, resp.Skipped, ui.RenderLocale(lang))
		return nil
	},
}

func init() {
	importCmd.Flags().String("key-prefix", "", "namespace prepended to every imported key")
}
