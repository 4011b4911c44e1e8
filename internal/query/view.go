package query

import (
	"strings"

	"archmap/internal/extractor"
	"archmap/internal/graph"
	"archmap/internal/hierarchy"
)

// filterFocus returns only the files whose hierarchy classification matches
// focusKey at the given level. Component-level matching accepts either the
// combined "module/component" key or the bare component name, a deliberate
// leniency for user convenience. An empty result is a legitimate outcome,
// not an error.
func filterFocus(files []*extractor.ParsedFile, cls *hierarchy.Classifier, level graph.Level, focusKey string) []*extractor.ParsedFile {
	var matched []*extractor.ParsedFile
	for _, f := range files {
		info := classify(f, cls)
		if matchesFocus(f, info, level, focusKey) {
			matched = append(matched, f)
		}
	}
	return matched
}

func matchesFocus(f *extractor.ParsedFile, info extractor.HierarchyInfo, level graph.Level, focusKey string) bool {
	if level == graph.LevelFile {
		return f.Path == focusKey || strings.HasSuffix(f.Path, focusKey)
	}
	key, ok := graph.GroupKeyFor(info, level)
	if !ok {
		return false
	}
	if key == focusKey {
		return true
	}
	return level == graph.LevelComponent && info.Component == focusKey
}

func classify(f *extractor.ParsedFile, cls *hierarchy.Classifier) extractor.HierarchyInfo {
	if f.Hierarchy != nil {
		return *f.Hierarchy
	}
	return cls.Classify(f.Path)
}

// Neighbors returns the induced subgraph around the nodes matching focusKey,
// expanded breadth-first for depth rounds in both edge directions, so the
// result shows dependencies and dependents alike. Depth 0 yields just the
// seeds and the edges between them. No match yields an empty graph.
func Neighbors(g *graph.Graph, focusKey string, depth int) *graph.Graph {
	seeds := seedNodes(g, focusKey)
	if len(seeds) == 0 {
		return graph.NewGraph()
	}

	out := make(map[string][]string)
	in := make(map[string][]string)
	for _, e := range g.Edges {
		out[e.From] = append(out[e.From], e.To)
		in[e.To] = append(in[e.To], e.From)
	}

	included := make(map[string]bool, len(seeds))
	frontier := seeds
	for _, id := range seeds {
		included[id] = true
	}
	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []string
		for _, id := range frontier {
			for _, nb := range out[id] {
				if !included[nb] {
					included[nb] = true
					next = append(next, nb)
				}
			}
			for _, nb := range in[id] {
				if !included[nb] {
					included[nb] = true
					next = append(next, nb)
				}
			}
		}
		frontier = next
	}

	sub := graph.NewGraph()
	for id := range included {
		if n, ok := g.Nodes[id]; ok {
			sub.AddNode(n)
		}
	}
	for _, e := range g.Edges {
		if included[e.From] && included[e.To] {
			sub.AddEdge(e)
		}
	}
	return sub
}

// seedNodes matches focusKey against node paths in three tiers: exact,
// suffix, then substring. The first tier with any match wins; within a tier
// all matches become seeds. Ambiguity across common substrings is a known
// limitation and is not disambiguated further.
func seedNodes(g *graph.Graph, focusKey string) []string {
	var exact, suffix, contains []string
	for id, n := range g.Nodes {
		switch {
		case n.Path == focusKey:
			exact = append(exact, id)
		case strings.HasSuffix(n.Path, focusKey):
			suffix = append(suffix, id)
		case strings.Contains(n.Path, focusKey):
			contains = append(contains, id)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	if len(suffix) > 0 {
		return suffix
	}
	return contains
}
