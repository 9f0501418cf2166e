// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/avelardi/placebook/cli"
)

var drivetimeCmd = &cobra.Command{
	Use:   "drivetime",
	Short: "Compute driving times between validated addresses",
	Long: `Interactive drive-time calculator: enter start points and
destinations, each validated against the places provider, then compute
current driving minutes for every pair. Return trips report the
out-and-back total with the per-direction split.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		application, err := provOptions.newApp(ctx)
		if err != nil {
			return err
		}

		prompter := cli.NewTripPrompter(application.session, application.driving, cmd.InOrStdin(), cmd.OutOrStdout())

		return prompter.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(drivetimeCmd)
}
