package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/runner"
)

var ErrRunNotFound = errors.New("run not found")

// Run is the record of one exploration plus shortest path computation on a maze.
type Run struct {
	ID               uuid.UUID       `json:"id"`
	AccountID        uuid.UUID       `json:"account_id"` // uuid.Nil for anonymous CLI runs
	MazeName         string          `json:"maze_name"`
	MazeFingerprint  string          `json:"maze_fingerprint"`
	Width            int             `json:"width"`
	Height           int             `json:"height"`
	Start            maze.Position   `json:"start"`
	Goal             maze.Position   `json:"goal"`
	Algorithm        string          `json:"algorithm"`
	Exploration      []runner.Step   `json:"exploration"`
	ExplorationSteps int             `json:"exploration_steps"`
	Path             []maze.Position `json:"path"`
	PathLength       int             `json:"path_length"`
	PathFound        bool            `json:"path_found"`
	Score            float64         `json:"score"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Summary drops the step log, which can be large, from a copy of the run.
func (r *Run) Summary() *Run {
	c := *r
	c.Exploration = nil
	return &c
}
