// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command deckctl manages comic decks outside the API server: it validates
// deck files, imports them into PostgreSQL and reads them in a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "deckctl:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "deckctl",
		Short:         "Manage RevenueGear comic decks",
		Long:          `deckctl validates deck YAML files, imports them into the catalogue and previews them in the terminal.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newHashPasswordCmd())

	return rootCmd
}
