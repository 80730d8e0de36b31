package maze

import (
	"fmt"
	"strings"
)

// Direction is one of the four compass directions a wall or a move can face.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the compass directions in the order neighbours are explored.
var Directions = []Direction{North, East, South, West}

var directionNames = [...]string{"N", "E", "S", "W"}

// Left returns the direction a quarter turn anticlockwise.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the direction a quarter turn clockwise.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Opposite returns the direction behind d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the coordinate change of a single step towards d.
// North increases y, East increases x.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	if d < North || d > West {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts both the short ("N") and the long ("north") form, in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Position is the location of a cell. (0, 0) is the south-west corner.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Step returns the neighbouring position towards d. The result may be out of bounds.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String renders the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Walls describes which sides of a single cell are closed.
type Walls struct {
	North bool // North is closed towards y+1.
	East  bool // East is closed towards x+1.
	South bool // South is closed towards y-1.
	West  bool // West is closed towards x-1.
}

// Has reports whether the side facing d is closed.
func (w Walls) Has(d Direction) bool {
	switch d {
	case North:
		return w.North
	case East:
		return w.East
	case South:
		return w.South
	case West:
		return w.West
	}
	return true
}

// Count returns the number of closed sides.
func (w Walls) Count() int {
	n := 0
	for _, d := range Directions {
		if w.Has(d) {
			n++
		}
	}
	return n
}
