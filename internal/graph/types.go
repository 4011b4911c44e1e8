package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NodeKind discriminates the two node variants.
type NodeKind string

const (
	NodeHierarchy NodeKind = "hierarchy"
	NodeAbstract  NodeKind = "abstract"
)

// Level is a hierarchy granularity. LevelInterface selects the type-graph
// view rather than a grouping of files.
type Level string

const (
	LevelArchitecture Level = "architecture"
	LevelModule       Level = "module"
	LevelComponent    Level = "component"
	LevelFile         Level = "file"
	LevelInterface    Level = "interface"
)

// AbstractKind is the declaration kind of an abstract node.
type AbstractKind string

const (
	AbstractInterface AbstractKind = "interface"
	AbstractType      AbstractKind = "type"
	AbstractClass     AbstractKind = "class"
	AbstractEnum      AbstractKind = "enum"
)

// EdgeKind discriminates the edge variants. The set is closed; renderers
// may map kind to visual style exhaustively.
type EdgeKind string

const (
	EdgeImport    EdgeKind = "import"
	EdgeRender    EdgeKind = "render"
	EdgeImplement EdgeKind = "implement"
	EdgeUse       EdgeKind = "use"
)

// AllEdgeKinds lists every edge kind a file-level build can produce.
var AllEdgeKinds = []EdgeKind{EdgeImport, EdgeRender, EdgeImplement, EdgeUse}

// Status marks diff membership. Freshly built graphs carry StatusNormal.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusAdded    Status = "added"
	StatusModified Status = "modified"
	StatusRemoved  Status = "removed"
)

// Node is a vertex in the dependency graph, polymorphic over two variants.
// Exactly one of Hierarchy/Abstract is set, matching Kind.
type Node struct {
	ID     string   `json:"id"`
	Kind   NodeKind `json:"kind"`
	Path   string   `json:"path"` // File path for file/abstract nodes, group key otherwise
	Status Status   `json:"status"`

	Hierarchy *HierarchyAttrs `json:"hierarchy,omitempty"`
	Abstract  *AbstractAttrs  `json:"abstract,omitempty"`
}

// HierarchyAttrs is the payload of a hierarchy node.
type HierarchyAttrs struct {
	Level  Level  `json:"level"`
	Parent string `json:"parent,omitempty"`
}

// AbstractAttrs is the payload of an abstract (type declaration) node.
type AbstractAttrs struct {
	Kind       AbstractKind `json:"kind"`
	Name       string       `json:"name"`
	IsExported bool         `json:"is_exported"`
}

// Edge is a directed relationship between two node IDs, polymorphic over
// four variants. Render and Symbol payloads are set for the kinds that
// carry them.
type Edge struct {
	Kind   EdgeKind `json:"kind"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Status Status   `json:"status"`

	Render *RenderAttrs `json:"render,omitempty"`
	Symbol *SymbolAttrs `json:"symbol,omitempty"`
}

// RenderAttrs is the payload of a render edge.
type RenderAttrs struct {
	Position    int    `json:"position"`
	SlotName    string `json:"slot_name,omitempty"`
	Conditional bool   `json:"conditional,omitempty"`
}

// SymbolAttrs is the payload of implement and use edges.
type SymbolAttrs struct {
	SymbolName string `json:"symbol_name"`
	ImportPath string `json:"import_path,omitempty"`
}

// Graph is an unordered collection of nodes (unique by ID) and edges.
// A graph is immutable once returned by a builder; filters and diffs
// produce new graphs.
type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []*Edge          `json:"edges"`
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: []*Edge{},
	}
}

// AddNode inserts a node, keyed by ID.
func (g *Graph) AddNode(n *Node) {
	if n == nil {
		return
	}
	g.Nodes[n.ID] = n
}

// AddEdge appends an edge. Dedup policy is the caller's concern since it
// varies by edge kind.
func (g *Graph) AddEdge(e *Edge) {
	if e == nil {
		return
	}
	g.Edges = append(g.Edges, e)
}

// HasNode reports whether an ID is present.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// Node IDs are pure functions of identity-defining attributes so repeated
// construction from the same input is idempotent.

// FileNodeID derives a file node's ID from its path.
func FileNodeID(path string) string {
	return "file:" + shortHash(path)
}

// GroupNodeID derives a hierarchy group node's ID from its level and key.
func GroupNodeID(level Level, key string) string {
	return fmt.Sprintf("%s:%s", level, key)
}

// AbstractNodeID derives an abstract node's ID from its kind, name, and
// defining file, keeping same-named types in different files distinct.
func AbstractNodeID(kind AbstractKind, name, path string) string {
	return fmt.Sprintf("%s:%s:%s", kind, name, shortHash(path))
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
