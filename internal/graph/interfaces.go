package graph

import (
	"fmt"

	"archmap/internal/extractor"
)

// BuildInterfaceGraph turns per-file type declarations into a graph of
// interface/type/class/enum nodes connected by implement ("is-a") and use
// edges. Extends and implements relationships both reuse the implement edge
// kind rather than introducing a fifth. Target names are resolved through a
// name index with last-writer-wins semantics on cross-file collisions; names
// that resolve to no node are silently dropped.
func (b *Builder) BuildInterfaceGraph(files []*extractor.ParsedFile) *Graph {
	g := NewGraph()
	nameToID := make(map[string]string)

	for _, f := range files {
		for _, t := range f.Types {
			id := AbstractNodeID(abstractKind(t.Kind), t.Name, f.Path)
			g.AddNode(&Node{
				ID:     id,
				Kind:   NodeAbstract,
				Path:   f.Path,
				Status: StatusNormal,
				Abstract: &AbstractAttrs{
					Kind:       abstractKind(t.Kind),
					Name:       t.Name,
					IsExported: t.IsExported,
				},
			})
			nameToID[t.Name] = id
		}
	}

	seen := make(map[string]bool)
	addEdge := func(kind EdgeKind, from, to, symbol string) {
		key := fmt.Sprintf("%s|%s->%s:%s", kind, from, to, symbol)
		if seen[key] {
			return
		}
		seen[key] = true
		g.AddEdge(&Edge{
			Kind:   kind,
			From:   from,
			To:     to,
			Status: StatusNormal,
			Symbol: &SymbolAttrs{SymbolName: symbol},
		})
	}

	for _, f := range files {
		for _, t := range f.Types {
			from := AbstractNodeID(abstractKind(t.Kind), t.Name, f.Path)
			for _, name := range t.Extends {
				if to, ok := nameToID[name]; ok && to != from {
					addEdge(EdgeImplement, from, to, name)
				}
			}
			for _, name := range t.Implements {
				if to, ok := nameToID[name]; ok && to != from {
					addEdge(EdgeImplement, from, to, name)
				}
			}
			for _, name := range t.References {
				if name == t.Name {
					continue
				}
				if to, ok := nameToID[name]; ok && to != from {
					addEdge(EdgeUse, from, to, name)
				}
			}
		}
	}

	return g
}

func abstractKind(kind string) AbstractKind {
	switch AbstractKind(kind) {
	case AbstractInterface, AbstractType, AbstractClass, AbstractEnum:
		return AbstractKind(kind)
	default:
		return AbstractType
	}
}
