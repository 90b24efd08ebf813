package main

import (
	"context"
	"fmt"
	"os"

	"github.com/simfra/lingod/internal/client"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List translation keys for a locale",
	GroupID: "translations",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")
		group, _ := cmd.Flags().GetString("group")
		search, _ := cmd.Flags().GetString("search")
		missing, _ := cmd.Flags().GetBool("missing")
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		req := &client.ListRequest{
			Lang:    lang,
			Group:   group,
			Search:  search,
			Missing: missing,
			Page:    page,
			PerPage: perPage,
		}

		resp, err := lingo.List(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printPageTable(resp)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("lang", "l", "en", "locale to list")
	listCmd.Flags().StringP("group", "g", "", "filter by key namespace")
	listCmd.Flags().StringP("search", "s", "", "substring match on key or value")
	listCmd.Flags().Bool("missing", false, "only keys without a value in this locale")
	listCmd.Flags().Int("page", 1, "page number")
	listCmd.Flags().Int("per-page", 30, "keys per page (max 100)")
}
