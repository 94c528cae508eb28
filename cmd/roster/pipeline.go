package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/recordstream"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		file  string
		short string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a historic players JSON array and print it as line-delimited JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := teams.NormalizeShortName(short)
			if err != nil {
				return err
			}
			team := teams.NewNBATeam(short)
			historic, err := a.lookups().RosterService(nil, a.logger).ImportHistoricPlayers(cmd.Context(), team, file)
			if err != nil {
				return err
			}

			w := recordstream.NewWriter(cmd.OutOrStdout())
			for _, p := range historic {
				if err := w.Write(p); err != nil {
					return err
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "imported %d historic players for %s\n", len(historic), short)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "historic players JSON file (required)")
	cmd.Flags().StringVarP(&short, "team", "t", "BOS", "team short name")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		short string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current roster of a team as line-delimited JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := teams.NormalizeShortName(short)
			if err != nil {
				return err
			}
			if out == "" {
				return errors.New("--out must not be empty")
			}
			svc := a.lookups().RosterService(nil, a.logger)
			team := teams.NewNBATeam(short)
			if err := svc.BuildDataByName(cmd.Context(), team); err != nil {
				return err
			}
			if err := svc.BuildPlayersByTeamID(cmd.Context(), team); err != nil {
				return err
			}
			if err := svc.ExportPlayers(cmd.Context(), team, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d players of %s to %s\n", len(team.Profile.Players), short, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&short, "team", "t", "", "team short name (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file (required)")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
