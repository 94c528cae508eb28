package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		short    string
		historic string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Load a team, import its historic players and export its roster in one go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := teams.NormalizeShortName(short)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			svc := a.lookups().RosterService(nil, a.logger)

			team := teams.NewNBATeam(short)
			if err := svc.BuildDataByName(ctx, team); err != nil {
				return err
			}
			if err := svc.BuildPlayersByTeamID(ctx, team); err != nil {
				return err
			}
			registered, err := svc.Register(ctx, team)
			if err != nil {
				return err
			}
			if err := printTeam(w, team); err != nil {
				return err
			}

			// The import works on its own copy so the export can read the
			// roster at the same time.
			importTeam := teams.NewNBATeam(short)
			var imported []records.Record
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				imported, err = svc.ImportHistoricPlayers(gctx, importTeam, historic)
				return err
			})
			g.Go(func() error {
				return svc.ExportPlayers(gctx, team, out)
			})
			if err := g.Wait(); err != nil {
				return err
			}
			team.HistoricPlayers = imported

			fmt.Fprintf(w, "registered: %t\n", registered)
			fmt.Fprintf(w, "historic players imported: %d\n", len(team.HistoricPlayers))
			fmt.Fprintf(w, "players exported to %s: %d\n", out, len(team.Profile.Players))
			return nil
		},
	}
	cmd.Flags().StringVarP(&short, "team", "t", "BOS", "team short name")
	cmd.Flags().StringVar(&historic, "historic", "./historic-players.json", "historic players JSON file")
	cmd.Flags().StringVarP(&out, "out", "o", "./exported-players.json", "export destination")
	return cmd
}

func printTeam(w io.Writer, team *teams.NBATeam) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(team)
}
