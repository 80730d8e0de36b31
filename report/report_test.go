package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExplorationLog(t *testing.T) {
	var buf bytes.Buffer
	steps := []runner.Step{
		{Number: 1, X: 0, Y: 0, Action: runner.Forward},
		{Number: 2, X: 0, Y: 1, Action: runner.TurnRightForward},
		{Number: 3, X: 1, Y: 1, Action: runner.Back},
	}

	require.NoError(t, WriteExplorationLog(&buf, steps))
	assert.Equal(t, "Step,x-coordinate,y-coordinate,Actions\r\n1,0,0,F\r\n2,0,1,RF\r\n3,1,1,B\r\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteExplorationLog(&buf, nil))
	assert.Equal(t, "Step,x-coordinate,y-coordinate,Actions\r\n", buf.String())
}

func TestWriteStatistics(t *testing.T) {
	var buf bytes.Buffer
	stats := Statistics{
		MazeFile:         "maze1.mz",
		ExplorationSteps: 4,
		Path:             []maze.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	}

	require.NoError(t, WriteStatistics(&buf, stats))
	assert.Equal(t, "maze1.mz\n4.0\n4\n[(0, 0), (0, 1), (1, 1)]\n3\n", buf.String())
}

func TestScore(t *testing.T) {
	assert.Equal(t, 6.0, Score(4, 5))
	assert.Equal(t, 12.25, Score(29, 5))
	assert.Equal(t, "6.0", FormatScore(Score(4, 5)))
	assert.Equal(t, "12.25", FormatScore(Score(29, 5)))
	assert.Equal(t, "0.5", FormatScore(Score(2, 0)))
	assert.Equal(t, "[]", FormatPath(nil))
}

func TestWriteComparison(t *testing.T) {
	var buf bytes.Buffer
	WriteComparison(&buf, "maze1.mz", []pathfinding.Result{
		{Algorithm: pathfinding.BFS, Path: make([]maze.Position, 5), Cost: 4, Expanded: 9},
		{Algorithm: pathfinding.AStar, Path: make([]maze.Position, 5), Cost: 4, Expanded: 5},
	})

	out := buf.String()
	assert.Contains(t, out, "maze1.mz")
	assert.Contains(t, out, "bfs")
	assert.Contains(t, out, "astar")
	assert.Equal(t, 1, strings.Count(strings.ToLower(out), "path length"))
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	WriteHistory(&buf, []*dmn.Run{
		{MazeName: "maze1.mz", Width: 3, Height: 3, Algorithm: "astar", ExplorationSteps: 4, Path: make([]maze.Position, 5), PathLength: 5, PathFound: true, Score: 6, CreatedAt: time.Now()},
		{MazeName: "island.mz", Width: 3, Height: 3, Algorithm: "bfs", ExplorationSteps: 9, Score: 2.25, CreatedAt: time.Now()},
	})

	out := buf.String()
	assert.Contains(t, out, "maze1.mz")
	assert.Contains(t, out, "island.mz")
	assert.Contains(t, out, "3x3")
	assert.Contains(t, out, "6.0")
	assert.Contains(t, out, "2.25")
}
