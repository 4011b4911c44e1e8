package diff

import (
	"fmt"

	"archmap/internal/graph"
)

// Changeset lists file paths that changed between two snapshots.
type Changeset struct {
	Added    []string `json:"added,omitempty"`
	Modified []string `json:"modified,omitempty"`
	Removed  []string `json:"removed,omitempty"`
}

// Summary reports category counts plus circular-dependency findings for the
// new snapshot.
type Summary struct {
	NodesAdded    int `json:"nodes_added"`
	NodesRemoved  int `json:"nodes_removed"`
	NodesModified int `json:"nodes_modified"`
	EdgesAdded    int `json:"edges_added"`
	EdgesRemoved  int `json:"edges_removed"`
	EdgesModified int `json:"edges_modified"`

	HasCircularDependency bool       `json:"has_circular_dependency"`
	Cycles                [][]string `json:"cycles,omitempty"`
}

// Result partitions the differences between two graph snapshots. Each
// category graph holds copies with the matching status; the inputs are
// never mutated.
type Result struct {
	Added    *graph.Graph `json:"added"`
	Removed  *graph.Graph `json:"removed"`
	Modified *graph.Graph `json:"modified"`
	Summary  Summary      `json:"summary"`
}

// Diff computes the set differences between two snapshots. It is a pure
// function: no state survives across calls. Nodes compare by ID, edges by
// (kind, from, to). Modified nodes are those present in both snapshots
// whose file path appears in the changeset; an edge is part of the modified
// blast radius as soon as either endpoint is, whether or not the edge
// itself changed.
func Diff(oldG, newG *graph.Graph, changes Changeset) *Result {
	res := &Result{
		Added:    graph.NewGraph(),
		Removed:  graph.NewGraph(),
		Modified: graph.NewGraph(),
	}

	modifiedFiles := make(map[string]bool, len(changes.Modified))
	for _, p := range changes.Modified {
		modifiedFiles[p] = true
	}

	for id, n := range newG.Nodes {
		if _, ok := oldG.Nodes[id]; !ok {
			res.Added.AddNode(copyNode(n, graph.StatusAdded))
		}
	}
	for id, n := range oldG.Nodes {
		if _, ok := newG.Nodes[id]; !ok {
			res.Removed.AddNode(copyNode(n, graph.StatusRemoved))
		}
	}

	modifiedNodes := make(map[string]bool)
	for id, n := range newG.Nodes {
		if _, ok := oldG.Nodes[id]; !ok {
			continue
		}
		if modifiedFiles[n.Path] {
			modifiedNodes[id] = true
			res.Modified.AddNode(copyNode(n, graph.StatusModified))
		}
	}

	oldEdges := edgeSet(oldG)
	newEdges := edgeSet(newG)

	for key, e := range newEdges {
		if _, ok := oldEdges[key]; !ok {
			res.Added.AddEdge(copyEdge(e, graph.StatusAdded))
		}
	}
	for key, e := range oldEdges {
		if _, ok := newEdges[key]; !ok {
			res.Removed.AddEdge(copyEdge(e, graph.StatusRemoved))
		}
	}
	for key, e := range newEdges {
		if _, ok := oldEdges[key]; !ok {
			continue
		}
		if modifiedNodes[e.From] || modifiedNodes[e.To] {
			res.Modified.AddEdge(copyEdge(e, graph.StatusModified))
		}
	}

	cycles := detectCycles(newG)
	res.Summary = Summary{
		NodesAdded:            len(res.Added.Nodes),
		NodesRemoved:          len(res.Removed.Nodes),
		NodesModified:         len(res.Modified.Nodes),
		EdgesAdded:            len(res.Added.Edges),
		EdgesRemoved:          len(res.Removed.Edges),
		EdgesModified:         len(res.Modified.Edges),
		HasCircularDependency: len(cycles) > 0,
		Cycles:                cycles,
	}
	return res
}

func edgeSet(g *graph.Graph) map[string]*graph.Edge {
	set := make(map[string]*graph.Edge, len(g.Edges))
	for _, e := range g.Edges {
		set[edgeKey(e)] = e
	}
	return set
}

// edgeKey is edge identity for diffing purposes: kind plus endpoints.
func edgeKey(e *graph.Edge) string {
	return fmt.Sprintf("%s|%s->%s", e.Kind, e.From, e.To)
}

func copyNode(n *graph.Node, status graph.Status) *graph.Node {
	c := *n
	c.Status = status
	if n.Hierarchy != nil {
		h := *n.Hierarchy
		c.Hierarchy = &h
	}
	if n.Abstract != nil {
		a := *n.Abstract
		c.Abstract = &a
	}
	return &c
}

func copyEdge(e *graph.Edge, status graph.Status) *graph.Edge {
	c := *e
	c.Status = status
	if e.Render != nil {
		r := *e.Render
		c.Render = &r
	}
	if e.Symbol != nil {
		s := *e.Symbol
		c.Symbol = &s
	}
	return &c
}
