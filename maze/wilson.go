package maze

import (
	"math/rand"
)

// Generate builds a perfect maze (every cell reachable, no loops) using
// Wilson's loop-erased random walk. The same rng seed yields the same maze.
func Generate(width, height int, rng *rand.Rand) (*Maze, error) {
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}
	m.closeAll()

	visited := make(map[Position]struct{}, width*height)
	visited[m.randomCellPosition(rng)] = struct{}{}

	for len(visited) < width*height {
		start := m.randomUnvisitedCellPosition(rng, visited)
		exits := m.randomWalk(rng, start, visited)

		// Retrace the walk using the last exit of each cell; loops are erased.
		for cell := start; ; {
			if _, done := visited[cell]; done {
				break
			}
			d := exits[cell]
			m.openWall(cell, d)
			visited[cell] = struct{}{}
			cell = cell.Step(d)
		}
	}

	return m, nil
}

// randomCellPosition picks any cell of the maze.
func (m *Maze) randomCellPosition(rng *rand.Rand) Position {
	return Position{X: rng.Intn(m.width), Y: rng.Intn(m.height)}
}

// randomUnvisitedCellPosition picks the first unvisited cell after a random offset in row-major order.
func (m *Maze) randomUnvisitedCellPosition(rng *rand.Rand, visited map[Position]struct{}) Position {
	total := m.width * m.height
	offset := rng.Intn(total)
	for i := 0; i < total; i++ {
		idx := (offset + i) % total
		pos := Position{X: idx % m.width, Y: idx / m.width}
		if _, included := visited[pos]; !included {
			return pos
		}
	}
	return Position{}
}

// inBoundDirections returns the directions from pos that stay inside the maze, ignoring walls.
func (m *Maze) inBoundDirections(pos Position) []Direction {
	result := make([]Direction, 0, 4)
	for _, d := range Directions {
		next := pos.Step(d)
		if m.InBound(next.X, next.Y) {
			result = append(result, d)
		}
	}
	return result
}

// randomWalk wanders from start until it hits a visited cell and returns the last exit taken from every cell it crossed.
func (m *Maze) randomWalk(rng *rand.Rand, start Position, visited map[Position]struct{}) map[Position]Direction {
	exits := make(map[Position]Direction)
	cell := start

	for {
		options := m.inBoundDirections(cell)
		d := options[rng.Intn(len(options))]
		exits[cell] = d
		cell = cell.Step(d)
		if _, included := visited[cell]; included {
			return exits
		}
	}
}
