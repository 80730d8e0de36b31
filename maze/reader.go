package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	wallChar = '#'
	openChar = ' '
)

var (
	ErrEmptyMaze         = errors.New("maze file is empty")
	ErrInconsistentWidth = errors.New("maze rows have inconsistent widths")
	ErrEvenDimensions    = errors.New("maze dimensions must be odd sized ASCII layout")
	ErrBorder            = errors.New("maze border must be all '#'")
)

// Load reads an ASCII maze file from disk.
func Load(path string) (*Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read maze file '%s': %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("maze file '%s': %w", path, err)
	}
	return m, nil
}

// Parse reads a maze in the ASCII format.
//
// Every row has the same odd length and there is an odd number of rows.
// The first and last rows and columns are '#'. Cell (x, y) sits at column
// 2x+1 and row 2(H-1-y)+1, so the first line of the file is the north
// border. A '#' east of a cell closes its east side, a '#' above a cell
// closes its north side. Any other character is open.
func Parse(r io.Reader) (*Maze, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrEmptyMaze
	}

	asciiHeight := len(rows)
	asciiWidth := len(rows[0])
	for i, row := range rows {
		if len(row) != asciiWidth {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInconsistentWidth, i+1, len(row), asciiWidth)
		}
	}

	if (asciiHeight-1)%2 != 0 || (asciiWidth-1)%2 != 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEvenDimensions, asciiWidth, asciiHeight)
	}

	if strings.Trim(rows[0], "#") != "" {
		return nil, fmt.Errorf("%w: top border", ErrBorder)
	}
	if strings.Trim(rows[asciiHeight-1], "#") != "" {
		return nil, fmt.Errorf("%w: bottom border", ErrBorder)
	}
	for i, row := range rows {
		if row[0] != wallChar || row[asciiWidth-1] != wallChar {
			return nil, fmt.Errorf("%w: side border on row %d", ErrBorder, i+1)
		}
	}

	width := (asciiWidth - 1) / 2
	height := (asciiHeight - 1) / 2
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ax := 2*x + 1
			ay := 2*(height-1-y) + 1

			if x < width-1 && rows[ay][ax+1] == wallChar {
				m.AddVerticalWall(y, x+1)
			}
			if y < height-1 && rows[ay-1][ax] == wallChar {
				m.AddHorizontalWall(x, y+1)
			}
		}
	}

	return m, nil
}

// readRows splits the input into lines, dropping line terminators and trailing blank lines.
func readRows(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 4*(2*maxMazeDimension+3))

	var rows []string
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: a row is wider than %d cells", ErrInvalidDimensions, maxMazeDimension)
		}
		return nil, fmt.Errorf("reading maze: %w", err)
	}

	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}
