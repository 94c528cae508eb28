package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/recordstream"
)

func newTeamCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "team SHORT",
		Short: "Print the team descriptor for a short name such as BOS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := shortNameArg(args)
			if err != nil {
				return err
			}
			team := teams.NewNBATeam(short)
			if err := a.lookups().RosterService(nil, a.logger).BuildDataByName(cmd.Context(), team); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(team.Info)
		},
	}
}

func newPlayersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "players SHORT",
		Short: "Print the current roster, one JSON player per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := shortNameArg(args)
			if err != nil {
				return err
			}
			svc := a.lookups().RosterService(nil, a.logger)
			team := teams.NewNBATeam(short)
			if err := svc.BuildDataByName(cmd.Context(), team); err != nil {
				return err
			}
			if err := svc.BuildPlayersByTeamID(cmd.Context(), team); err != nil {
				return err
			}

			w := recordstream.NewWriter(cmd.OutOrStdout())
			for _, p := range team.Profile.Players {
				if err := w.Write(p); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}
