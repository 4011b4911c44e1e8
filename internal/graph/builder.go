package graph

import (
	"log/slog"

	"archmap/internal/extractor"
	"archmap/internal/hierarchy"
	"archmap/internal/resolver"
)

// Builder assembles graphs from ParsedFile fact records. It owns the import
// resolver (and its per-root alias cache) and the hierarchy classifier for
// the duration of one analysis session.
type Builder struct {
	resolver    *resolver.Resolver
	classifier  *hierarchy.Classifier
	projectRoot string
}

// NewBuilder creates a builder rooted at projectRoot.
func NewBuilder(res *resolver.Resolver, cls *hierarchy.Classifier, projectRoot string) *Builder {
	if res == nil {
		res = resolver.New()
	}
	if cls == nil {
		cls = hierarchy.NewClassifier()
	}
	return &Builder{
		resolver:    res,
		classifier:  cls,
		projectRoot: projectRoot,
	}
}

// BuildFileGraph creates one hierarchy node per input file plus the union of
// the requested edge kinds. When no kinds are given, only import edges are
// built. Unresolved import targets never produce nodes or edges.
func (b *Builder) BuildFileGraph(files []*extractor.ParsedFile, kinds ...EdgeKind) *Graph {
	if len(kinds) == 0 {
		kinds = []EdgeKind{EdgeImport}
	}

	g := NewGraph()
	known := make(resolver.FileSet, len(files))
	ids := make(map[string]string, len(files))

	for _, f := range files {
		known[f.Path] = true
		id := FileNodeID(f.Path)
		ids[f.Path] = id
		g.AddNode(&Node{
			ID:     id,
			Kind:   NodeHierarchy,
			Path:   f.Path,
			Status: StatusNormal,
			Hierarchy: &HierarchyAttrs{
				Level: LevelFile,
			},
		})
	}

	for _, kind := range kinds {
		switch kind {
		case EdgeImport:
			g.Edges = append(g.Edges, b.importEdges(files, known, ids)...)
		case EdgeImplement:
			g.Edges = append(g.Edges, b.implementEdges(files, known, ids)...)
		case EdgeRender:
			g.Edges = append(g.Edges, b.renderEdges(files, known, ids)...)
		case EdgeUse:
			// Use edges only exist in the interface-level graph.
		default:
			slog.Debug("ignoring unknown edge kind", "kind", kind)
		}
	}

	return g
}

// classify returns the file's hierarchy info, preferring pre-computed facts.
func (b *Builder) classify(f *extractor.ParsedFile) extractor.HierarchyInfo {
	if f.Hierarchy != nil {
		return *f.Hierarchy
	}
	return b.classifier.Classify(f.Path)
}
