package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/beka-birhanu/maze-runner/infrastruture/repo"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/report"
	"github.com/beka-birhanu/maze-runner/service"
)

func runCmd(a *app) *cobra.Command {
	var (
		starting  string
		goal      string
		algorithm string
		logPath   string
		statsPath string
		history   string
	)

	c := &cobra.Command{
		Use:   "run <maze-file>",
		Short: "Explore a maze with the left-hand rule and compute its shortest path",
		Long: "Explore a maze with the left-hand rule starting at --starting facing north,\n" +
			"write the exploration log and run statistics, and print the shortest path.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mazeFile := args[0]

			m, err := maze.Load(mazeFile)
			if err != nil {
				return err
			}

			start, err := optionalCoord(starting)
			if err != nil {
				return err
			}
			end, err := optionalCoord(goal)
			if err != nil {
				return err
			}
			algo, err := pathfinding.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}

			opts := &service.RunnerOptions{}
			if history != "" {
				runs, err := repo.NewSQLiteRunRepo(history)
				if err != nil {
					return err
				}
				defer runs.Close()
				opts.Runs = runs
			}

			svc := service.NewRunnerService(a.logger, opts)
			run, err := svc.Run(cmd.Context(), service.RunRequest{
				MazeName:  mazeFile,
				Maze:      m,
				Start:     start,
				Goal:      end,
				Algorithm: algo,
			})
			if run != nil {
				if werr := writeFile(logPath, func(w io.Writer) error {
					return report.WriteExplorationLog(w, run.Exploration)
				}); werr != nil {
					return werr
				}
			}
			if err != nil {
				return err
			}

			if err := writeFile(statsPath, func(w io.Writer) error {
				return report.WriteStatistics(w, report.Statistics{
					MazeFile:         mazeFile,
					ExplorationSteps: run.ExplorationSteps,
					Path:             run.Path,
				})
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Shortest path: %s\n", report.FormatPath(run.Path))
			return nil
		},
	}

	c.Flags().StringVar(&starting, "starting", "", `start position "x,y" (default "0,0")`)
	c.Flags().StringVar(&goal, "goal", "", `goal position "x,y" (default: north-east cell)`)
	c.Flags().StringVar(&algorithm, "algorithm", string(pathfinding.DefaultAlgorithm), "shortest path algorithm: bfs|dijkstra|astar")
	c.Flags().StringVar(&logPath, "log", "exploration.csv", "exploration log output file")
	c.Flags().StringVar(&statsPath, "stats", "statistics.txt", "statistics output file")
	c.Flags().StringVar(&history, "history", "", "SQLite file to record the run in (optional)")
	return c
}
