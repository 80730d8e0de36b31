package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/maze-runner/maze"
)

// Action is the code logged for a single exploration move.
type Action string

const (
	TurnLeftForward  Action = "LF" // turn left, then step forward
	Forward          Action = "F"  // step forward
	TurnRightForward Action = "RF" // turn right, then step forward
	Back             Action = "B"  // step back and face the opposite way
)

var (
	ErrWallAhead       = errors.New("cannot go straight, wall in front of runner")
	ErrTrapped         = errors.New("runner is enclosed on every side")
	ErrGoalUnreachable = errors.New("goal cannot be reached by following the left wall")
)

// Maze is what the runner needs to know about the maze it explores.
type Maze interface {
	InBound(x, y int) bool
	Walls(x, y int) maze.Walls
}

// Step is one entry of the exploration log. X and Y are the position the action was taken from.
type Step struct {
	Number int    `json:"step" bson:"step"`
	X      int    `json:"x" bson:"x"`
	Y      int    `json:"y" bson:"y"`
	Action Action `json:"action" bson:"action"`
}

// Sense reports the walls on the runner's left, in front of it and on its right.
func Sense(m Maze, r Runner) (left, front, right bool) {
	walls := m.Walls(r.X, r.Y)
	return walls.Has(r.Orientation.Left()), walls.Has(r.Orientation), walls.Has(r.Orientation.Right())
}

// GoStraight moves the runner one cell forward unless a wall blocks it.
func GoStraight(m Maze, r Runner) (Runner, error) {
	if _, front, _ := Sense(m, r); front {
		return r, fmt.Errorf("%w at (%d, %d) facing %s", ErrWallAhead, r.X, r.Y, r.Orientation)
	}
	return r.Forward(), nil
}

// Move makes one left-hand rule decision: turn left and go forward if the
// left is open, otherwise go straight, otherwise turn right and go forward,
// otherwise step back and face the opposite way.
func Move(m Maze, r Runner) (Runner, Action, error) {
	left, front, right := Sense(m, r)

	switch {
	case !left:
		next, err := GoStraight(m, r.Turn(Left))
		return next, TurnLeftForward, err
	case !front:
		next, err := GoStraight(m, r)
		return next, Forward, err
	case !right:
		next, err := GoStraight(m, r.Turn(Right))
		return next, TurnRightForward, err
	}

	behind := r.Orientation.Opposite()
	if m.Walls(r.X, r.Y).Has(behind) {
		return r, "", fmt.Errorf("%w at (%d, %d)", ErrTrapped, r.X, r.Y)
	}

	dx, dy := behind.Delta()
	return Runner{X: r.X + dx, Y: r.Y + dy, Orientation: behind}, Back, nil
}

// Explore applies Move until the runner stands on goal and returns the log of every move.
//
// The walk is deterministic, so reaching the same position with the same
// orientation twice means the runner is circling and will never arrive;
// Explore then stops with ErrGoalUnreachable. The steps taken so far are
// returned alongside any error.
func Explore(ctx context.Context, m Maze, r Runner, goal maze.Position) ([]Step, error) {
	if !m.InBound(r.X, r.Y) {
		return nil, fmt.Errorf("start %s: %w", r.Position(), maze.ErrOutOfBounds)
	}
	if !m.InBound(goal.X, goal.Y) {
		return nil, fmt.Errorf("goal %s: %w", goal, maze.ErrOutOfBounds)
	}

	steps := make([]Step, 0)
	seen := make(map[Runner]struct{})

	for r.Position() != goal {
		if err := ctx.Err(); err != nil {
			return steps, err
		}

		if _, ok := seen[r]; ok {
			return steps, fmt.Errorf("%w: revisited (%d, %d) facing %s after %d steps", ErrGoalUnreachable, r.X, r.Y, r.Orientation, len(steps))
		}
		seen[r] = struct{}{}

		next, action, err := Move(m, r)
		if err != nil {
			return steps, err
		}

		steps = append(steps, Step{
			Number: len(steps) + 1,
			X:      r.X,
			Y:      r.Y,
			Action: action,
		})
		r = next
	}

	return steps, nil
}
