package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/beka-birhanu/maze-runner/config"
	"github.com/beka-birhanu/maze-runner/infrastruture/repo"
	"github.com/beka-birhanu/maze-runner/report"
	"github.com/beka-birhanu/maze-runner/service"
)

func historyCmd(a *app) *cobra.Command {
	var (
		db    string
		limit int
	)

	c := &cobra.Command{
		Use:   "history",
		Short: "List the most recent runs recorded with run --history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if db == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				db = cfg.SQLitePath
			}

			runs, err := repo.NewSQLiteRunRepo(db)
			if err != nil {
				return err
			}
			defer runs.Close()

			svc := service.NewRunnerService(a.logger, &service.RunnerOptions{Runs: runs})
			recent, err := svc.RecentRuns(cmd.Context(), uuid.Nil, limit)
			if err != nil {
				return err
			}

			report.WriteHistory(cmd.OutOrStdout(), recent)
			return nil
		},
	}

	c.Flags().StringVar(&db, "db", "", "SQLite history file (default: $SQLITE_PATH or maze-runner.db)")
	c.Flags().IntVar(&limit, "limit", 20, "number of runs to list")
	return c
}
