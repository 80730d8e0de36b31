// Package runapi exposes maze runs and path comparisons over HTTP.
package runapi

import (
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinding"
)

// RunRequest asks for a run on the maze given as ASCII text.
type RunRequest struct {
	MazeName  string         `json:"maze_name"`
	Maze      string         `json:"maze" binding:"required"`
	Start     *maze.Position `json:"start"`
	Goal      *maze.Position `json:"goal"`
	Algorithm string         `json:"algorithm"`
}

// CompareRequest asks for the shortest path of several algorithms.
type CompareRequest struct {
	Maze       string         `json:"maze" binding:"required"`
	Start      *maze.Position `json:"start"`
	Goal       *maze.Position `json:"goal"`
	Algorithms []string       `json:"algorithms"`
}

// CompareResponse lists one result per requested algorithm.
type CompareResponse struct {
	Results []pathfinding.Result `json:"results"`
}
