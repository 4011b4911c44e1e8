package diff

import (
	"sort"

	"archmap/internal/graph"
)

// detectCycles finds import cycles via depth-first traversal with an
// explicit frame stack, so deeply nested import chains cannot exhaust the
// call stack. Only import-kind edges participate. Each reported cycle is a
// node-path slice closed explicitly, so a two-file cycle reads (a, b, a).
func detectCycles(g *graph.Graph) [][]string {
	adj := make(map[string][]string)
	for _, e := range g.Edges {
		if e.Kind == graph.EdgeImport {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}
	for id := range adj {
		sort.Strings(adj[id])
	}

	starts := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		starts = append(starts, id)
	}
	sort.Strings(starts)

	type frame struct {
		id   string
		next int
	}

	visited := make(map[string]bool, len(starts))
	var cycles [][]string

	for _, start := range starts {
		if visited[start] {
			continue
		}
		visited[start] = true

		stack := []frame{{id: start}}
		path := []string{start}
		onPath := map[string]int{start: 0}

		for len(stack) > 0 {
			top := len(stack) - 1
			children := adj[stack[top].id]

			if stack[top].next >= len(children) {
				delete(onPath, stack[top].id)
				path = path[:len(path)-1]
				stack = stack[:top]
				continue
			}

			child := children[stack[top].next]
			stack[top].next++

			if idx, ok := onPath[child]; ok {
				// The cycle is the path slice from the repeated node
				// through the current node, plus the repeated node again.
				cycle := make([]string, 0, len(path)-idx+1)
				cycle = append(cycle, path[idx:]...)
				cycle = append(cycle, child)
				cycles = append(cycles, nodePaths(g, cycle))
				continue
			}
			if visited[child] {
				continue
			}
			visited[child] = true
			onPath[child] = len(path)
			path = append(path, child)
			stack = append(stack, frame{id: child})
		}
	}

	return cycles
}

// nodePaths maps node IDs to their human-meaningful paths for reporting.
func nodePaths(g *graph.Graph, ids []string) []string {
	paths := make([]string, len(ids))
	for i, id := range ids {
		if n, ok := g.Nodes[id]; ok {
			paths[i] = n.Path
		} else {
			paths[i] = id
		}
	}
	return paths
}
