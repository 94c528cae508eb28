package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/server"
)

// app holds what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	envFiles   []string
	cfg        config.Config
	logger     *slog.Logger
	components *server.Components
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "roster",
		Short:        "Look up NBA teams and rosters, import historic players and export rosters",
		Version:      appVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.components == nil {
				return nil
			}
			return a.components.Close()
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load before reading the environment (default .env)")

	root.AddCommand(
		newTeamCmd(a),
		newPlayersCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newCheckCmd(a),
		newDemoCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.envFiles...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	a.cfg = config.Load()
	a.logger = logging.NewLogger(logging.Config{
		Level:   a.cfg.Log.Level,
		Format:  a.cfg.Log.Format,
		Service: appName,
		Version: appVersion,
		Writer:  cmd.ErrOrStderr(),
	})
	return nil
}

// lookups lazily builds the shared components for one-shot commands. They
// record into an in-memory recorder; only serve exports metrics.
func (a *app) lookups() *server.Components {
	if a.components == nil {
		a.components = server.BuildComponents(a.cfg, a.logger, metrics.NewRecorder())
	}
	return a.components
}

func shortNameArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one team short name")
	}
	return teams.NormalizeShortName(args[0])
}
