package maze

import (
	"io"
	"strings"
)

const (
	pathChar  = '.'
	startChar = 'S'
	goalChar  = 'G'
)

// String renders the maze in the ASCII format accepted by Parse.
func (m *Maze) String() string {
	return joinGrid(m.grid())
}

// Render writes the ASCII form of the maze to w.
func (m *Maze) Render(w io.Writer) error {
	_, err := io.WriteString(w, m.String())
	return err
}

// RenderPath renders the maze with path drawn over it. The first cell is
// marked 'S', the last 'G' and everything in between '.'. The output is
// still a valid maze file.
func (m *Maze) RenderPath(path []Position) string {
	grid := m.grid()

	for i, p := range path {
		if !m.InBound(p.X, p.Y) {
			continue
		}
		ax, ay := m.asciiCoords(p)
		switch i {
		case 0:
			grid[ay][ax] = startChar
		case len(path) - 1:
			grid[ay][ax] = goalChar
		default:
			grid[ay][ax] = pathChar
		}

		if i == 0 {
			continue
		}
		prev := path[i-1]
		if !m.InBound(prev.X, prev.Y) {
			continue
		}
		px, py := m.asciiCoords(prev)
		if abs(px-ax)+abs(py-ay) == 2 {
			grid[(py+ay)/2][(px+ax)/2] = pathChar
		}
	}

	return joinGrid(grid)
}

func (m *Maze) asciiCoords(p Position) (int, int) {
	return 2*p.X + 1, 2*(m.height-1-p.Y) + 1
}

func (m *Maze) grid() [][]byte {
	asciiWidth := 2*m.width + 1
	asciiHeight := 2*m.height + 1

	grid := make([][]byte, asciiHeight)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(string(wallChar), asciiWidth))
	}

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			ax, ay := m.asciiCoords(Position{X: x, Y: y})
			grid[ay][ax] = openChar

			walls := m.Walls(x, y)
			if !walls.East {
				grid[ay][ax+1] = openChar
			}
			if !walls.North {
				grid[ay-1][ax] = openChar
			}
		}
	}

	return grid
}

func joinGrid(grid [][]byte) string {
	var sb strings.Builder
	for _, row := range grid {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
