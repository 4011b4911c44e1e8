package query

import (
	"fmt"

	"archmap/internal/diff"
	"archmap/internal/extractor"
	"archmap/internal/graph"
	"archmap/internal/hierarchy"
	"archmap/internal/resolver"
)

// Mode selects how the built graph is filtered.
type Mode string

const (
	ModeGlobal    Mode = "global"
	ModeFocused   Mode = "focused"
	ModeNeighbors Mode = "neighbors"
)

// Request describes one graph query.
type Request struct {
	Level graph.Level      `json:"level"` // Default: file
	Kinds []graph.EdgeKind `json:"kinds"` // Default: import only
	Mode  Mode             `json:"mode"`  // Default: global

	// FocusKey is required for focused and neighbors modes.
	FocusKey string `json:"focus_key,omitempty"`

	// Depth bounds the neighbors-mode BFS expansion.
	Depth int `json:"depth"`

	// InternalLevel is the granularity focused mode rebuilds at.
	// Default: file.
	InternalLevel graph.Level `json:"internal_level,omitempty"`
}

// NewRequest returns a request with the documented defaults.
func NewRequest() Request {
	return Request{
		Level:         graph.LevelFile,
		Mode:          ModeGlobal,
		Depth:         1,
		InternalLevel: graph.LevelFile,
	}
}

func (r *Request) setDefaults() {
	if r.Level == "" {
		r.Level = graph.LevelFile
	}
	if r.Mode == "" {
		r.Mode = ModeGlobal
	}
	if r.InternalLevel == "" {
		r.InternalLevel = graph.LevelFile
	}
	if r.Depth < 0 {
		r.Depth = 1
	}
}

// Engine answers graph queries over a set of ParsedFile facts.
type Engine struct {
	builder    *graph.Builder
	classifier *hierarchy.Classifier
}

// NewEngine creates a query engine for one analysis session.
func NewEngine(res *resolver.Resolver, cls *hierarchy.Classifier, projectRoot string) *Engine {
	if cls == nil {
		cls = hierarchy.NewClassifier()
	}
	return &Engine{
		builder:    graph.NewBuilder(res, cls, projectRoot),
		classifier: cls,
	}
}

// Builder exposes the underlying graph builder for callers that need raw
// builds (the diff pipeline builds two snapshots itself).
func (e *Engine) Builder() *graph.Builder {
	return e.builder
}

// Run validates the request, builds the graph at the requested level, and
// applies the requested view filter. A query matching nothing returns an
// empty graph, never an error; only malformed requests fail.
func (e *Engine) Run(files []*extractor.ParsedFile, req Request) (*graph.Graph, error) {
	req.setDefaults()

	if req.Mode != ModeGlobal && req.FocusKey == "" {
		return nil, fmt.Errorf("focus key is required for mode %q", req.Mode)
	}

	switch req.Mode {
	case ModeGlobal:
		return e.buildAt(files, req.Level, req.Kinds), nil
	case ModeFocused:
		matched := filterFocus(files, e.classifier, req.Level, req.FocusKey)
		if len(matched) == 0 {
			return graph.NewGraph(), nil
		}
		return e.buildAt(matched, req.InternalLevel, req.Kinds), nil
	case ModeNeighbors:
		g := e.buildAt(files, req.Level, req.Kinds)
		return Neighbors(g, req.FocusKey, req.Depth), nil
	default:
		return nil, fmt.Errorf("unknown query mode %q", req.Mode)
	}
}

// TranslateChangeset maps a file-path changeset into the node path space of
// the given level. Group nodes carry grouping keys as their path, so a diff
// at module or component level needs the changed files folded into the keys
// of the groups containing them. A group counts as modified when any file
// inside it was added, modified, or removed; whole-group appearance and
// disappearance is detected by node identity and needs no changeset help.
// File and interface levels pass through untouched.
func (e *Engine) TranslateChangeset(changes diff.Changeset, level graph.Level) diff.Changeset {
	switch level {
	case graph.LevelArchitecture, graph.LevelModule, graph.LevelComponent:
	default:
		return changes
	}

	seen := make(map[string]bool)
	var keys []string
	for _, paths := range [][]string{changes.Added, changes.Modified, changes.Removed} {
		for _, p := range paths {
			info := e.classifier.Classify(p)
			key, ok := graph.GroupKeyFor(info, level)
			if !ok || seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return diff.Changeset{Modified: keys}
}

func (e *Engine) buildAt(files []*extractor.ParsedFile, level graph.Level, kinds []graph.EdgeKind) *graph.Graph {
	switch level {
	case graph.LevelInterface:
		return e.builder.BuildInterfaceGraph(files)
	case graph.LevelArchitecture, graph.LevelModule, graph.LevelComponent:
		return e.builder.BuildHierarchyGraph(files, level)
	default:
		return e.builder.BuildFileGraph(files, kinds...)
	}
}
