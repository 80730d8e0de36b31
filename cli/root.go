// Package cli implements the maze-runner command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/beka-birhanu/maze-runner/config"
	logger "github.com/beka-birhanu/maze-runner/infrastruture/log"
)

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is shared by every subcommand.
type app struct {
	debug  bool
	logger *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "maze-runner",
		Short:         "Explore ASCII mazes with the left-hand rule and find their shortest paths",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a.logger, err = newLogger("RUNNER", config.ColorBlue, cmd.ErrOrStderr(), a.debug)
			return err
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		runCmd(a),
		compareCmd(a),
		generateCmd(a),
		renderCmd(a),
		historyCmd(a),
		serveCmd(a),
	)
	return cmd
}

func newLogger(prefix, color string, w io.Writer, debug bool) (*logger.Logger, error) {
	l, err := logger.New(prefix, color, w)
	if err != nil {
		return nil, fmt.Errorf("creating %s logger: %w", prefix, err)
	}
	l.SetDebug(debug)
	return l, nil
}

// writeFile creates path and fills it with write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
