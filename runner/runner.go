// Package runner moves a single agent through a maze using only what it can sense from its current cell.
package runner

import (
	"github.com/beka-birhanu/maze-runner/maze"
)

// Turn is the direction of a quarter turn.
type Turn int

const (
	Left Turn = iota
	Right
)

// Runner is an agent standing on a cell and facing one of the compass directions.
// Runner values are immutable; every operation returns a new Runner.
type Runner struct {
	X           int            `json:"x" bson:"x"`
	Y           int            `json:"y" bson:"y"`
	Orientation maze.Direction `json:"orientation" bson:"orientation"`
}

// New returns a runner at (x, y) facing o.
func New(x, y int, o maze.Direction) Runner {
	return Runner{X: x, Y: y, Orientation: o}
}

// Position returns the cell the runner stands on.
func (r Runner) Position() maze.Position {
	return maze.Position{X: r.X, Y: r.Y}
}

// Turn rotates the runner in place.
func (r Runner) Turn(t Turn) Runner {
	switch t {
	case Left:
		r.Orientation = r.Orientation.Left()
	case Right:
		r.Orientation = r.Orientation.Right()
	}
	return r
}

// Forward moves the runner one cell in the direction it faces, ignoring walls.
func (r Runner) Forward() Runner {
	dx, dy := r.Orientation.Delta()
	r.X += dx
	r.Y += dy
	return r
}
