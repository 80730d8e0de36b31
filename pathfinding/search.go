package pathfinding

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/beka-birhanu/maze-runner/maze"
)

// breadthFirst explores cells in order of distance, which is shortest for unit costs.
func breadthFirst(ctx context.Context, g Graph, start, goal maze.Position) (Result, error) {
	queue := []maze.Position{start}
	visited := map[maze.Position]struct{}{start: {}}
	parent := make(map[maze.Position]maze.Position)

	var res Result
	for len(queue) > 0 {
		if res.Expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		current := queue[0]
		queue = queue[1:]
		res.Expanded++

		if current == goal {
			res.Path = reconstruct(parent, start, goal)
			return res, nil
		}

		for _, n := range g.Neighbours(current) {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			parent[n] = current
			queue = append(queue, n)
		}
	}

	return res, ErrNoPath
}

// bestFirst is Dijkstra when heuristic is nil and A* otherwise.
func bestFirst(ctx context.Context, g Graph, start, goal maze.Position, cost CostFunc, heuristic func(a, b maze.Position) int) (Result, error) {
	h := func(p maze.Position) int {
		if heuristic == nil {
			return 0
		}
		return heuristic(p, goal)
	}

	open := &frontier{}
	heap.Push(open, &node{pos: start, g: 0, f: h(start)})

	gCost := map[maze.Position]int{start: 0}
	parent := make(map[maze.Position]maze.Position)
	closed := make(map[maze.Position]struct{})

	var res Result
	for open.Len() > 0 {
		if res.Expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		current := heap.Pop(open).(*node)
		if _, done := closed[current.pos]; done {
			continue
		}
		closed[current.pos] = struct{}{}
		res.Expanded++

		if current.pos == goal {
			res.Path = reconstruct(parent, start, goal)
			res.Cost = current.g
			return res, nil
		}

		for _, n := range g.Neighbours(current.pos) {
			if _, done := closed[n]; done {
				continue
			}

			step := cost(current.pos, n)
			if step < 1 {
				return res, fmt.Errorf("%w: %s -> %s costs %d", ErrInvalidCost, current.pos, n, step)
			}

			tentative := current.g + step
			if known, ok := gCost[n]; ok && tentative >= known {
				continue
			}
			gCost[n] = tentative
			parent[n] = current.pos
			heap.Push(open, &node{pos: n, g: tentative, f: tentative + h(n)})
		}
	}

	return res, ErrNoPath
}

type node struct {
	pos maze.Position
	g   int
	f   int
}

// frontier is a min-heap on (f, x, y).
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	a, b := f[i], f[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.pos.X != b.pos.X {
		return a.pos.X < b.pos.X
	}
	return a.pos.Y < b.pos.Y
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*node)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
