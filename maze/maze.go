/*
Package maze provides rectangular mazes made of cells separated by walls.

A maze of width W and height H has cells (x, y) with 0 <= x < W and
0 <= y < H, where (0, 0) is the south-west corner. The outer border is
always closed. Internal walls are stored on grid lines:

  - a horizontal wall (x, line) closes the south side of cell (x, line),
  - a vertical wall (y, line) closes the west side of cell (line, y).

The package reads and writes the ASCII maze format, generates perfect
mazes with Wilson's algorithm and answers the neighbour queries used by
the runner and the path finders.
*/
package maze

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
)

const (
	maxMazeDimension = 1000
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("position is outside the maze")
	ErrInvalidDirection  = errors.New("invalid direction")
)

type wall struct {
	at   int
	line int
}

// Maze is a rectangular maze. The zero value is not usable, use New.
type Maze struct {
	width      int
	height     int
	horizontal map[wall]struct{}
	vertical   map[wall]struct{}
}

// New returns an empty maze of the given dimensions with only the outer border closed.
func New(width, height int) (*Maze, error) {
	if min(width, height) <= 0 || max(width, height) > maxMazeDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	return &Maze{
		width:      width,
		height:     height,
		horizontal: make(map[wall]struct{}),
		vertical:   make(map[wall]struct{}),
	}, nil
}

// Width returns the number of columns.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	return m.height
}

// Goal returns the default goal, the north-east corner.
func (m *Maze) Goal() Position {
	return Position{X: m.width - 1, Y: m.height - 1}
}

// AddHorizontalWall closes the south side of cell (x, line).
func (m *Maze) AddHorizontalWall(x, line int) {
	m.horizontal[wall{at: x, line: line}] = struct{}{}
}

// AddVerticalWall closes the west side of cell (line, y).
func (m *Maze) AddVerticalWall(y, line int) {
	m.vertical[wall{at: y, line: line}] = struct{}{}
}

// RemoveHorizontalWall opens the south side of cell (x, line).
func (m *Maze) RemoveHorizontalWall(x, line int) {
	delete(m.horizontal, wall{at: x, line: line})
}

// RemoveVerticalWall opens the west side of cell (line, y).
func (m *Maze) RemoveVerticalWall(y, line int) {
	delete(m.vertical, wall{at: y, line: line})
}

// InBound reports whether (x, y) is a cell of the maze.
func (m *Maze) InBound(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Walls returns the closed sides of cell (x, y). Cells outside the maze are closed on every side.
func (m *Maze) Walls(x, y int) Walls {
	if !m.InBound(x, y) {
		return Walls{North: true, East: true, South: true, West: true}
	}

	w := Walls{
		North: y == m.height-1,
		East:  x == m.width-1,
		South: y == 0,
		West:  x == 0,
	}

	if _, ok := m.horizontal[wall{at: x, line: y + 1}]; ok {
		w.North = true
	}
	if _, ok := m.horizontal[wall{at: x, line: y}]; ok {
		w.South = true
	}
	if _, ok := m.vertical[wall{at: y, line: x + 1}]; ok {
		w.East = true
	}
	if _, ok := m.vertical[wall{at: y, line: x}]; ok {
		w.West = true
	}

	return w
}

// Neighbours returns the cells reachable from p in one step, in North, East, South, West order.
func (m *Maze) Neighbours(p Position) []Position {
	walls := m.Walls(p.X, p.Y)
	result := make([]Position, 0, 4)
	for _, d := range Directions {
		if walls.Has(d) {
			continue
		}
		next := p.Step(d)
		if m.InBound(next.X, next.Y) {
			result = append(result, next)
		}
	}
	return result
}

// CheckPosition returns ErrOutOfBounds when p is not a cell of the maze.
func (m *Maze) CheckPosition(p Position) error {
	if !m.InBound(p.X, p.Y) {
		return fmt.Errorf("%w: %s in %dx%d maze", ErrOutOfBounds, p, m.width, m.height)
	}
	return nil
}

// openWall removes the wall between p and its neighbour towards d.
func (m *Maze) openWall(p Position, d Direction) {
	switch d {
	case North:
		m.RemoveHorizontalWall(p.X, p.Y+1)
	case South:
		m.RemoveHorizontalWall(p.X, p.Y)
	case East:
		m.RemoveVerticalWall(p.Y, p.X+1)
	case West:
		m.RemoveVerticalWall(p.Y, p.X)
	}
}

// closeAll adds every internal wall.
func (m *Maze) closeAll() {
	for x := 0; x < m.width; x++ {
		for line := 1; line < m.height; line++ {
			m.AddHorizontalWall(x, line)
		}
	}
	for y := 0; y < m.height; y++ {
		for line := 1; line < m.width; line++ {
			m.AddVerticalWall(y, line)
		}
	}
}

// Fingerprint returns a stable hex digest of the dimensions and internal walls.
// Two mazes with the same layout have the same fingerprint.
func (m *Maze) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	write := func(v int) {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}

	write(m.width)
	write(m.height)
	for _, set := range []map[wall]struct{}{m.horizontal, m.vertical} {
		walls := sortedWalls(set)
		write(len(walls))
		for _, w := range walls {
			write(w.at)
			write(w.line)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func sortedWalls(set map[wall]struct{}) []wall {
	walls := make([]wall, 0, len(set))
	for w := range set {
		walls = append(walls, w)
	}
	sort.Slice(walls, func(i, j int) bool {
		if walls[i].line != walls[j].line {
			return walls[i].line < walls[j].line
		}
		return walls[i].at < walls[j].at
	})
	return walls
}
