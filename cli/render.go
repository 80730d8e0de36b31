package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/service"
)

func renderCmd(a *app) *cobra.Command {
	var (
		withPath  bool
		starting  string
		goal      string
		algorithm string
	)

	c := &cobra.Command{
		Use:   "render <maze-file>",
		Short: "Print a maze, optionally with its shortest path marked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := maze.Load(args[0])
			if err != nil {
				return err
			}
			if !withPath {
				return m.Render(cmd.OutOrStdout())
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

			svc := service.NewRunnerService(a.logger, nil)
			results, err := svc.Compare(cmd.Context(), m, start, end, algo)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), m.RenderPath(results[0].Path))
			return nil
		},
	}

	c.Flags().BoolVar(&withPath, "path", false, "mark the shortest path")
	c.Flags().StringVar(&starting, "starting", "", `start position "x,y" (default "0,0")`)
	c.Flags().StringVar(&goal, "goal", "", `goal position "x,y" (default: north-east cell)`)
	c.Flags().StringVar(&algorithm, "algorithm", string(pathfinding.DefaultAlgorithm), "shortest path algorithm: bfs|dijkstra|astar")
	return c
}
