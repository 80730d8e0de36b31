// Package pathfinding computes shortest paths between maze cells with BFS, Dijkstra or A*.
package pathfinding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/maze-runner/maze"
)

// Algorithm names a shortest path search strategy.
type Algorithm string

const (
	BFS      Algorithm = "bfs"
	Dijkstra Algorithm = "dijkstra"
	AStar    Algorithm = "astar"

	// DefaultAlgorithm is used when no algorithm is requested.
	DefaultAlgorithm = AStar

	// ctxCheckInterval is how many expansions happen between context checks.
	ctxCheckInterval = 256
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{BFS, Dijkstra, AStar}

var (
	ErrNoPath           = errors.New("no path between start and goal")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidCost      = errors.New("step cost must be at least 1")
)

// ParseAlgorithm resolves an algorithm name. The empty string selects DefaultAlgorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultAlgorithm, nil
	case "bfs", "breadth-first":
		return BFS, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Graph is a grid whose cells know their reachable neighbours. *maze.Maze implements it.
type Graph interface {
	InBound(x, y int) bool
	Neighbours(p maze.Position) []maze.Position
}

// CostFunc returns the cost of stepping between two adjacent cells.
type CostFunc func(from, to maze.Position) int

// Result is the outcome of a single search.
type Result struct {
	Algorithm Algorithm       `json:"algorithm" bson:"algorithm"`
	Path      []maze.Position `json:"path" bson:"path"`
	Cost      int             `json:"cost" bson:"cost"`
	Expanded  int             `json:"expanded" bson:"expanded"` // cells taken off the frontier
}

// Length returns the number of cells on the path, start and goal included.
func (r Result) Length() int {
	return len(r.Path)
}

type options struct {
	cost CostFunc
}

// Option configures a search.
type Option func(*options)

// WithCost replaces the unit step cost. BFS ignores it while searching but reports the path cost with it.
func WithCost(c CostFunc) Option {
	return func(o *options) {
		o.cost = c
	}
}

func unitCost(_, _ maze.Position) int {
	return 1
}

// Search finds a shortest path from start to goal. Neighbours are expanded
// in North, East, South, West order. Dijkstra and A* pop the lowest priority
// first and break ties on the smaller x, then the smaller y.
func Search(ctx context.Context, g Graph, algo Algorithm, start, goal maze.Position, opts ...Option) (Result, error) {
	o := &options{cost: unitCost}
	for _, opt := range opts {
		opt(o)
	}

	if !g.InBound(start.X, start.Y) {
		return Result{Algorithm: algo}, fmt.Errorf("start %s: %w", start, maze.ErrOutOfBounds)
	}
	if !g.InBound(goal.X, goal.Y) {
		return Result{Algorithm: algo}, fmt.Errorf("goal %s: %w", goal, maze.ErrOutOfBounds)
	}

	var (
		res Result
		err error
	)
	switch algo {
	case BFS:
		res, err = breadthFirst(ctx, g, start, goal)
	case Dijkstra:
		res, err = bestFirst(ctx, g, start, goal, o.cost, nil)
	case AStar:
		res, err = bestFirst(ctx, g, start, goal, o.cost, manhattan)
	default:
		return Result{Algorithm: algo}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
	res.Algorithm = algo
	if err != nil {
		return res, err
	}

	if algo == BFS {
		res.Cost, err = pathCost(res.Path, o.cost)
	}
	return res, err
}

// manhattan is admissible as long as every step costs at least 1.
func manhattan(a, b maze.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func pathCost(path []maze.Position, cost CostFunc) (int, error) {
	total := 0
	for i := 1; i < len(path); i++ {
		c := cost(path[i-1], path[i])
		if c < 1 {
			return 0, fmt.Errorf("%w: %s -> %s costs %d", ErrInvalidCost, path[i-1], path[i], c)
		}
		total += c
	}
	return total, nil
}

// reconstruct walks the parent links back from goal and returns the path from start.
func reconstruct(parent map[maze.Position]maze.Position, start, goal maze.Position) []maze.Position {
	path := []maze.Position{goal}
	for node := goal; node != start; {
		node = parent[node]
		path = append(path, node)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
