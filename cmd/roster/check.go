package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/notifier"
)

func newCheckCmd(a *app) *cobra.Command {
	var tz string
	cmd := &cobra.Command{
		Use:   "check SHORT",
		Short: "Report the earliest final result of a team since yesterday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := shortNameArg(args)
			if err != nil {
				return err
			}
			c := a.lookups()
			svc := c.RosterService(notifier.New(c.Games, tz, a.logger), a.logger)
			team := teams.NewNBATeam(short)

			msg, err := svc.CheckLatestResult(cmd.Context(), team)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone used to pick today and yesterday (default UTC)")
	return cmd
}
