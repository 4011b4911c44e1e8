package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archmap/internal/graph"
)

func flowchartGraph() *graph.Graph {
	g := graph.NewGraph()
	g.AddNode(&graph.Node{
		ID: "n_app", Kind: graph.NodeHierarchy, Path: "src/App.tsx", Status: graph.StatusNormal,
		Hierarchy: &graph.HierarchyAttrs{Level: graph.LevelFile},
	})
	g.AddNode(&graph.Node{
		ID: "n_btn", Kind: graph.NodeHierarchy, Path: "src/Button.tsx", Status: graph.StatusNormal,
		Hierarchy: &graph.HierarchyAttrs{Level: graph.LevelFile},
	})
	g.AddNode(&graph.Node{
		ID: "n_api", Kind: graph.NodeHierarchy, Path: "src/api.ts", Status: graph.StatusNormal,
		Hierarchy: &graph.HierarchyAttrs{Level: graph.LevelFile},
	})
	g.AddEdge(&graph.Edge{Kind: graph.EdgeImport, From: "n_app", To: "n_api", Status: graph.StatusNormal})
	g.AddEdge(&graph.Edge{
		Kind: graph.EdgeRender, From: "n_app", To: "n_btn", Status: graph.StatusNormal,
		Render: &graph.RenderAttrs{Position: 0, SlotName: "footer"},
	})
	return g
}

func TestMermaidGenerator_Flowchart(t *testing.T) {
	gen := NewMermaidGenerator()
	out := gen.Generate(flowchartGraph())

	assert.True(t, strings.HasPrefix(out, "```mermaid\nflowchart LR\n"))
	assert.Contains(t, out, `n_app["src/App.tsx"]`)
	assert.Contains(t, out, "n_app --> n_api")
	assert.Contains(t, out, "n_app -.->|slot:footer| n_btn")
	assert.NotContains(t, out, "classDef", "no status classes on a normal graph")
}

func TestMermaidGenerator_Deterministic(t *testing.T) {
	gen := NewMermaidGenerator()

	// Map iteration order varies between runs; output must not.
	first := gen.Generate(flowchartGraph())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, gen.Generate(flowchartGraph()))
	}
}

func TestMermaidGenerator_StatusClasses(t *testing.T) {
	g := flowchartGraph()
	g.Nodes["n_btn"].Status = graph.StatusAdded
	g.Nodes["n_api"].Status = graph.StatusRemoved

	gen := NewMermaidGenerator()
	out := gen.Generate(g)

	assert.Contains(t, out, "classDef addedNode")
	assert.Contains(t, out, "class n_btn addedNode;")
	assert.Contains(t, out, "classDef removedNode")
	assert.Contains(t, out, "class n_api removedNode;")
	assert.NotContains(t, out, "modifiedNode")
}

func TestMermaidGenerator_ClassDiagram(t *testing.T) {
	g := graph.NewGraph()
	g.AddNode(&graph.Node{
		ID: "i_repo", Kind: graph.NodeAbstract, Path: "src/contract.ts", Status: graph.StatusNormal,
		Abstract: &graph.AbstractAttrs{Kind: graph.AbstractInterface, Name: "Repository", IsExported: true},
	})
	g.AddNode(&graph.Node{
		ID: "c_svc", Kind: graph.NodeAbstract, Path: "src/service.ts", Status: graph.StatusNormal,
		Abstract: &graph.AbstractAttrs{Kind: graph.AbstractClass, Name: "UserService", IsExported: true},
	})
	g.AddNode(&graph.Node{
		ID: "t_map", Kind: graph.NodeAbstract, Path: "src/service.ts", Status: graph.StatusNormal,
		Abstract: &graph.AbstractAttrs{Kind: graph.AbstractType, Name: "ServiceMap"},
	})
	g.AddEdge(&graph.Edge{
		Kind: graph.EdgeImplement, From: "c_svc", To: "i_repo", Status: graph.StatusNormal,
		Symbol: &graph.SymbolAttrs{SymbolName: "Repository"},
	})
	g.AddEdge(&graph.Edge{
		Kind: graph.EdgeUse, From: "t_map", To: "c_svc", Status: graph.StatusNormal,
		Symbol: &graph.SymbolAttrs{SymbolName: "UserService"},
	})

	gen := NewMermaidGenerator()
	out := gen.Generate(g)

	require.True(t, strings.HasPrefix(out, "```mermaid\nclassDiagram\n"))
	assert.Contains(t, out, "class Repository {")
	assert.Contains(t, out, "<<interface>>")
	assert.Contains(t, out, "<<type>>")
	assert.Contains(t, out, "Repository <|-- UserService")
	assert.Contains(t, out, "ServiceMap ..> UserService : uses")
}

func TestSanitizeMermaidID(t *testing.T) {
	assert.Equal(t, "file_abc123", sanitizeMermaidID("file:abc123"))
	assert.Equal(t, "module_auth_login", sanitizeMermaidID("module:auth/login"))
	assert.Equal(t, "n_1x", sanitizeMermaidID("1x"))
	assert.Equal(t, "node", sanitizeMermaidID("  "))
}
