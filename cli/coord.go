package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beka-birhanu/maze-runner/maze"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate format")

// parseCoord reads "x,y", allowing spaces around either number.
func parseCoord(s string) (maze.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return maze.Position{}, fmt.Errorf("%w: '%s' (expected x,y)", ErrInvalidCoordinate, s)
	}

	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return maze.Position{}, fmt.Errorf("%w: '%s' (expected x,y)", ErrInvalidCoordinate, s)
	}
	return maze.Position{X: x, Y: y}, nil
}

// optionalCoord parses s unless it is empty.
func optionalCoord(s string) (*maze.Position, error) {
	if s == "" {
		return nil, nil
	}
	p, err := parseCoord(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
