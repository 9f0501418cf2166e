// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avelardi/placebook/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the session REST API (local only)",
	Long: `Serves one interactive session over HTTP for alternative
frontends. The catalog lives in memory and is gone when the process
exits; there is nothing multi-user about it, so keep it on localhost.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		application, err := provOptions.newApp(ctx)
		if err != nil {
			return err
		}

		srv := server.New(application.session, application.resolver, application.driving)

		fmt.Printf("placebook session server on http://%s\n", serveAddr)
		fmt.Println("local only - not meant to be exposed to the internet")

		return srv.Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
