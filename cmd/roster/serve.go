package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-roster-service/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the result poller until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := context.WithCancel(cmd.Context())
			defer stop()

			// A failing listener cancels ctx so Run returns.
			server.New(a.cfg, a.logger).Run(ctx, stop)
			return nil
		},
	}
}
