package main

import (
	"os"

	"github.com/simfra/lingod/internal/client"
	"github.com/simfra/lingod/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serverURL   string
	authToken   string
	routePrefix string
	jsonOutput  bool
	noColorFlag bool

	lingo client.LingoClient
)

func defaultServerURL() string {
	if s := os.Getenv("LINGOD_URL"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if s := os.Getenv("LINGOD_TOKEN"); s != "" {
		return s
	}
	return activeRemoteToken()
}

func defaultPrefix() string {
	if p := activeRemotePrefix(); p != "" {
		return p
	}
	return client.DefaultPrefix
}

var rootCmd = &cobra.Command{
	Use:   "lingod <command>",
	Short: "CLI client and server for the Lingo translation service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColorFlag || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		lingo = client.NewHTTPClient(serverURL, routePrefix, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if lingo != nil {
			lingo.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", defaultServerURL(), "server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token for authentication")
	rootCmd.PersistentFlags().StringVar(&routePrefix, "prefix", defaultPrefix(), "admin route prefix on the server")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "translations", Title: "Translations:"},
		&cobra.Group{ID: "runtime", Title: "Runtime:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false

	// Translations
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(langsCmd)

	// Runtime
	rootCmd.AddCommand(loadCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
