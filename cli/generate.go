package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/beka-birhanu/maze-runner/service"
)

func generateCmd(a *app) *cobra.Command {
	var (
		width  int
		height int
		seed   int64
		out    string
	)

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random perfect maze in the ASCII maze format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			svc := service.NewRunnerService(a.logger, nil)
			m, err := svc.Generate(width, height, seed)
			if err != nil {
				return err
			}
			a.logger.Info(fmt.Sprintf("Generated %dx%d maze, seed %d", width, height, seed))

			if out == "" {
				return m.Render(cmd.OutOrStdout())
			}
			return writeFile(out, func(w io.Writer) error { return m.Render(w) })
		},
	}

	c.Flags().IntVar(&width, "width", 10, "maze width in cells")
	c.Flags().IntVar(&height, "height", 10, "maze height in cells")
	c.Flags().Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return c
}
