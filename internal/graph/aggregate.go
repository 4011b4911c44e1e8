package graph

import (
	"archmap/internal/extractor"
	"archmap/internal/resolver"
)

// BuildHierarchyGraph regroups files into architecture/module/component
// nodes and folds file-level imports into deduplicated inter-group edges.
// Files without a grouping key at the requested level are excluded; they do
// not silently promote to a different level. Intra-group imports are never
// emitted — collapsing that noise is the point of the aggregated view.
func (b *Builder) BuildHierarchyGraph(files []*extractor.ParsedFile, level Level) *Graph {
	g := NewGraph()

	known := make(resolver.FileSet, len(files))
	keyByPath := make(map[string]string, len(files))

	for _, f := range files {
		known[f.Path] = true
		info := b.classify(f)
		key, ok := GroupKeyFor(info, level)
		if !ok {
			continue
		}
		keyByPath[f.Path] = key

		id := GroupNodeID(level, key)
		if g.HasNode(id) {
			continue
		}
		attrs := &HierarchyAttrs{Level: level}
		if level == LevelComponent && info.Module != "" && info.Component != "" {
			attrs.Parent = GroupNodeID(LevelModule, info.Module)
		}
		g.AddNode(&Node{
			ID:        id,
			Kind:      NodeHierarchy,
			Path:      key,
			Status:    StatusNormal,
			Hierarchy: attrs,
		})
	}

	// Aggregation is presence-based: any number of underlying file-pair
	// imports between two groups yields exactly one edge.
	seen := make(map[string]bool)
	for _, f := range files {
		fromKey, ok := keyByPath[f.Path]
		if !ok {
			continue
		}
		for _, imp := range f.Imports {
			target, resolved := b.resolver.Resolve(f.Path, imp.ImportPath, known, b.projectRoot)
			if !resolved {
				continue
			}
			toKey, ok := keyByPath[target]
			if !ok || toKey == fromKey {
				continue
			}
			key := fromKey + "->" + toKey
			if seen[key] {
				continue
			}
			seen[key] = true
			g.AddEdge(&Edge{
				Kind:   EdgeImport,
				From:   GroupNodeID(level, fromKey),
				To:     GroupNodeID(level, toKey),
				Status: StatusNormal,
			})
		}
	}

	return g
}

// GroupKeyFor computes a file's grouping key for the given level.
// Architecture keys require an explicit architecture tag; component keys
// combine module and component, falling back to module-only grouping for
// flat layouts. The second return is false when the file has no key at the
// level and must be excluded from the aggregated graph.
func GroupKeyFor(info extractor.HierarchyInfo, level Level) (string, bool) {
	switch level {
	case LevelArchitecture:
		if info.Architecture == "" {
			return "", false
		}
		return info.Architecture, true
	case LevelModule:
		if info.Module == "" {
			return "", false
		}
		return info.Module, true
	case LevelComponent:
		if info.Module == "" {
			return "", false
		}
		if info.Component == "" {
			return info.Module, true
		}
		return info.Module + "/" + info.Component, true
	default:
		return "", false
	}
}
