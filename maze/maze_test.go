package maze

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridorMaze = `#######
#     #
# ### #
# # # #
# # ###
#     #
#######
`

func TestParse(t *testing.T) {
	t.Run("reads walls", func(t *testing.T) {
		m, err := Parse(strings.NewReader(corridorMaze))
		require.NoError(t, err)

		assert.Equal(t, 3, m.Width())
		assert.Equal(t, 3, m.Height())

		assert.Equal(t, Walls{South: true, West: true}, m.Walls(0, 0))
		assert.Equal(t, Walls{East: true, West: true}, m.Walls(0, 1))
		assert.Equal(t, Walls{North: true, South: true}, m.Walls(1, 2))
		assert.Equal(t, Walls{North: true, East: true, West: true}, m.Walls(1, 1))
		assert.Equal(t, Walls{North: true, East: true, South: true}, m.Walls(2, 0))
		assert.Equal(t, 3, m.Walls(2, 0).Count())
	})

	t.Run("accepts CRLF and trailing blank lines", func(t *testing.T) {
		input := strings.ReplaceAll(corridorMaze, "\n", "\r\n") + "\r\n"
		m, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, 3, m.Width())
	})

	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "empty", input: "", err: ErrEmptyMaze},
		{name: "ragged rows", input: "#####\n#   #\n####\n", err: ErrInconsistentWidth},
		{name: "even width", input: "####\n#  #\n####\n", err: ErrEvenDimensions},
		{name: "even height", input: "###\n# #\n# #\n###\n", err: ErrEvenDimensions},
		{name: "open top", input: "# #\n# #\n###\n", err: ErrBorder},
		{name: "open bottom", input: "###\n# #\n## \n", err: ErrBorder},
		{name: "open side", input: "###\n  #\n###\n", err: ErrBorder},
		{name: "no cells", input: "#\n", err: ErrInvalidDimensions},
		{name: "too wide", input: strings.Repeat("#", 2*(maxMazeDimension+1)+1) + "\n", err: ErrInvalidDimensions},
		{name: "row longer than the read buffer", input: strings.Repeat("#", 10001) + "\n", err: ErrInvalidDimensions},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	m, err := Parse(strings.NewReader(corridorMaze))
	require.NoError(t, err)
	assert.Equal(t, corridorMaze, m.String())

	generated, err := Generate(7, 5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	reparsed, err := Parse(strings.NewReader(generated.String()))
	require.NoError(t, err)
	assert.Equal(t, generated.Fingerprint(), reparsed.Fingerprint())
}

func TestRenderPath(t *testing.T) {
	m, err := Parse(strings.NewReader(corridorMaze))
	require.NoError(t, err)

	path := []Position{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}}
	want := `#######
#....G#
#.### #
#.# # #
#.# ###
#S    #
#######
`
	assert.Equal(t, want, m.RenderPath(path))

	_, err = Parse(strings.NewReader(m.RenderPath(path)))
	assert.NoError(t, err)
}

func TestNeighbours(t *testing.T) {
	m, err := Parse(strings.NewReader(corridorMaze))
	require.NoError(t, err)

	assert.Equal(t, []Position{{0, 1}, {1, 0}}, m.Neighbours(Position{0, 0}))
	assert.Equal(t, []Position{{0, 2}, {0, 0}}, m.Neighbours(Position{0, 1}))
	assert.Equal(t, []Position{{1, 0}}, m.Neighbours(Position{1, 1}))
	assert.Empty(t, m.Neighbours(Position{5, 5}))
}

func TestNew(t *testing.T) {
	_, err := New(0, 3)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = New(3, maxMazeDimension+1)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	m, err := New(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Position{1, 1}, m.Goal())
	assert.NoError(t, m.CheckPosition(Position{1, 0}))
	assert.ErrorIs(t, m.CheckPosition(Position{2, 0}), ErrOutOfBounds)
}

func TestGenerateIsPerfect(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 99} {
		m, err := Generate(8, 6, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		// A perfect maze is a spanning tree: every cell reachable and exactly cells-1 passages.
		seen := map[Position]struct{}{{0, 0}: {}}
		queue := []Position{{0, 0}}
		passages := 0
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, n := range m.Neighbours(cur) {
				passages++
				if _, ok := seen[n]; !ok {
					seen[n] = struct{}{}
					queue = append(queue, n)
				}
			}
		}

		assert.Len(t, seen, 8*6, "seed %d", seed)
		assert.Equal(t, 2*(8*6-1), passages, "seed %d", seed)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(10, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := Generate(10, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestDirection(t *testing.T) {
	assert.Equal(t, West, North.Left())
	assert.Equal(t, East, North.Right())
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, North, West.Right())

	d, err := ParseDirection("east")
	require.NoError(t, err)
	assert.Equal(t, East, d)

	_, err = ParseDirection("up")
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, "(3, 4)", Position{3, 4}.String())
}
