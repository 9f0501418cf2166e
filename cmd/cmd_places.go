// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avelardi/placebook/cli"
	"github.com/avelardi/placebook/places"
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "Build an interactive catalog of places",
	Long: `Starts the interactive session: type place names, pick among
alternatives when a name is ambiguous, review and replace earlier picks,
and print the summary table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		application, err := provOptions.newApp(ctx)
		if err != nil {
			return err
		}

		prompter := cli.NewPrompter(application.session, cmd.InOrStdin(), cmd.OutOrStdout())

		return prompter.Run(ctx)
	},
}

var placesAddCmd = &cobra.Command{
	Use:   "add <place>...",
	Short: "Resolve places non-interactively and print the table",
	Long: `Resolves each argument as a place name. Ambiguous names take the
provider's first result regardless of --policy, the way a one-shot
invocation has to.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// One-shot mode can't stop to ask, so force auto-accept.
		opts := provOptions
		opts.Policy = places.AutoAcceptFirst.String()

		application, err := opts.newApp(ctx)
		if err != nil {
			return err
		}

		for _, query := range args {
			result, err := application.session.Submit(ctx, query)
			if err != nil {
				return fmt.Errorf("resolving %q: %w", query, err)
			}

			switch result.Status {
			case places.SubmitNotFound:
				fmt.Fprintf(cmd.ErrOrStderr(), "no matches found for %q\n", query)
			case places.SubmitDuplicate:
				fmt.Fprintf(cmd.ErrOrStderr(), "already in catalog: %s\n", result.Entry.Details.DisplayLabel())
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCatalogTable(application.session.Entries()))

		return nil
	},
}

func init() {
	placesCmd.AddCommand(placesAddCmd)
	rootCmd.AddCommand(placesCmd)
}
