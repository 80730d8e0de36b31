package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/report"
	"github.com/beka-birhanu/maze-runner/service"
)

func compareCmd(a *app) *cobra.Command {
	var (
		starting   string
		goal       string
		algorithms []string
	)

	c := &cobra.Command{
		Use:   "compare <maze-file>",
		Short: "Compare the shortest path algorithms on a maze",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := maze.Load(args[0])
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

			algos := make([]pathfinding.Algorithm, 0, len(algorithms))
			for _, name := range algorithms {
				algo, err := pathfinding.ParseAlgorithm(name)
				if err != nil {
					return err
				}
				algos = append(algos, algo)
			}

			svc := service.NewRunnerService(a.logger, nil)
			results, err := svc.Compare(cmd.Context(), m, start, end, algos...)
			if err != nil {
				return err
			}

			report.WriteComparison(cmd.OutOrStdout(), filepath.Base(args[0]), results)
			return nil
		},
	}

	c.Flags().StringVar(&starting, "starting", "", `start position "x,y" (default "0,0")`)
	c.Flags().StringVar(&goal, "goal", "", `goal position "x,y" (default: north-east cell)`)
	c.Flags().StringSliceVar(&algorithms, "algorithms", nil, "algorithms to compare (default: all)")
	return c
}
