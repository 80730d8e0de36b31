// Package report writes exploration logs, run statistics and algorithm comparisons.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/runner"
)

var explorationHeader = []string{"Step", "x-coordinate", "y-coordinate", "Actions"}

// WriteExplorationLog writes the exploration steps as CSV, one CRLF-terminated
// row per step.
func WriteExplorationLog(w io.Writer, steps []runner.Step) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(explorationHeader); err != nil {
		return err
	}

	for i, s := range steps {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.X),
			strconv.Itoa(s.Y),
			string(s.Action),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Statistics summarises a run.
type Statistics struct {
	MazeFile         string
	ExplorationSteps int
	Path             []maze.Position
}

// Score rewards short explorations and short paths: a quarter point per
// exploration step plus one point per cell on the shortest path. Lower is better.
func Score(explorationSteps, pathLength int) float64 {
	return float64(explorationSteps)/4 + float64(pathLength)
}

// Score returns the score of the run.
func (s Statistics) Score() float64 {
	return Score(s.ExplorationSteps, len(s.Path))
}

// WriteStatistics writes the maze file name, score, exploration step count,
// shortest path and its length, one per line.
func WriteStatistics(w io.Writer, s Statistics) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n%d\n%s\n%d\n",
		s.MazeFile,
		FormatScore(s.Score()),
		s.ExplorationSteps,
		FormatPath(s.Path),
		len(s.Path),
	)
	return err
}

// FormatScore prints a score with at least one decimal place, e.g. "7.0" or "12.25".
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatInt prints v in base 10.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatPath prints a path as "[(0, 0), (0, 1)]".
func FormatPath(path []maze.Position) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
