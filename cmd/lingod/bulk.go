package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/simfra/lingod/internal/translations"
	"github.com/simfra/lingod/internal/ui"
	"github.com/spf13/cobra"
)

var bulkCmd = &cobra.Command{
	Use:     "bulk <lang> <file.json>",
	Short:   "Save many translations from a flat JSON object",
	GroupID: "translations",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, path := args[0], args[1]

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var flat map[string]string
		if err := json.Unmarshal(data, &flat); err != nil {
			return fmt.Errorf("%s must be a flat JSON object: %w", path, err)
		}

		pairs := make([]translations.KeyValue, 0, len(flat))
		for k, v := range flat {
			pairs = append(pairs, translations.KeyValue{Key: k, Value: v})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })

		resp, err := lingo.BulkUpsert(context.Background(), lang, pairs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}

		fmt.Printf("%d translations saved for %s\n", len(resp.Translations), ui.RenderLocale(lang))
		for _, f := range resp.Failures {
			fmt.Fprintf(os.Stderr, "failed: %s: %s\n", f.Key, f.Error)
		}
		if len(resp.Failures) > 0 {
			os.Exit(1)
		}
		return nil
	},
}
