// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// isTerminal reports whether f is a character device; if that can't
// be determined we say that it isn't.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve queries from stdin and dump the raw outcome",
	Long: `Reads one query per line and prints the query followed by the
resolver outcome as JSON.

$ echo "Eiffel Tower" | placebook debug resolve
Eiffel Tower		{"kind":0,"details":{…}}
	`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		application, err := provOptions.newApp(ctx)
		if err != nil {
			return err
		}

		input := os.Stdin
		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Enter queries to resolve, one per line…")
		}

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			query := scanner.Text()

			outcome, err := application.resolver.Resolve(ctx, query)
			if err != nil {
				fmt.Printf("%s\t%q\n", query, err)

				continue
			}

			if s, err := json.Marshal(outcome); err == nil {
				fmt.Printf("%s\t\t%s\n", query, s)
			} else {
				log.Fatal(err)
			}
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		return nil
	},
}

func init() {
	debugCmd.AddCommand(debugResolveCmd)
	rootCmd.AddCommand(debugCmd)
}
