package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archmap/internal/extractor"
	"archmap/internal/graph"
)

func buildFileGraph(t *testing.T, files ...*extractor.ParsedFile) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(nil, nil, "")
	return b.BuildFileGraph(files)
}

func fileWithImports(path string, specs ...string) *extractor.ParsedFile {
	f := &extractor.ParsedFile{Path: path}
	for _, s := range specs {
		f.Imports = append(f.Imports, extractor.ImportInfo{ImportPath: s})
	}
	return f
}

func TestDiff_AddedAndRemoved(t *testing.T) {
	oldG := buildFileGraph(t,
		fileWithImports("src/a.ts", "./b"),
		fileWithImports("src/b.ts"),
	)
	newG := buildFileGraph(t,
		fileWithImports("src/a.ts", "./c"),
		fileWithImports("src/c.ts"),
	)

	res := Diff(oldG, newG, Changeset{
		Added:   []string{"src/c.ts"},
		Removed: []string{"src/b.ts"},
	})

	require.Len(t, res.Added.Nodes, 1)
	require.Len(t, res.Removed.Nodes, 1)
	assert.True(t, res.Added.HasNode(graph.FileNodeID("src/c.ts")))
	assert.True(t, res.Removed.HasNode(graph.FileNodeID("src/b.ts")))

	require.Len(t, res.Added.Edges, 1)
	require.Len(t, res.Removed.Edges, 1)
	assert.Equal(t, graph.StatusAdded, res.Added.Edges[0].Status)
	assert.Equal(t, graph.StatusRemoved, res.Removed.Edges[0].Status)

	assert.Equal(t, 1, res.Summary.NodesAdded)
	assert.Equal(t, 1, res.Summary.NodesRemoved)
	assert.Equal(t, 1, res.Summary.EdgesAdded)
	assert.Equal(t, 1, res.Summary.EdgesRemoved)
	assert.False(t, res.Summary.HasCircularDependency)
}

func TestDiff_ModifiedBlastRadius(t *testing.T) {
	files := []*extractor.ParsedFile{
		fileWithImports("src/a.ts", "./b"),
		fileWithImports("src/b.ts", "./c"),
		fileWithImports("src/c.ts"),
	}
	oldG := buildFileGraph(t, files...)
	newG := buildFileGraph(t, files...)

	res := Diff(oldG, newG, Changeset{Modified: []string{"src/b.ts"}})

	require.Len(t, res.Modified.Nodes, 1)
	assert.True(t, res.Modified.HasNode(graph.FileNodeID("src/b.ts")))

	// Both edges touch b, so both enter the modified blast radius even
	// though neither edge itself changed.
	assert.Len(t, res.Modified.Edges, 2)
	assert.Equal(t, 2, res.Summary.EdgesModified)
}

func TestDiff_IdenticalGraphsAreEmpty(t *testing.T) {
	files := []*extractor.ParsedFile{
		fileWithImports("src/a.ts", "./b"),
		fileWithImports("src/b.ts"),
	}
	res := Diff(buildFileGraph(t, files...), buildFileGraph(t, files...), Changeset{})

	assert.Empty(t, res.Added.Nodes)
	assert.Empty(t, res.Removed.Nodes)
	assert.Empty(t, res.Modified.Nodes)
	assert.Empty(t, res.Added.Edges)
	assert.Empty(t, res.Removed.Edges)
	assert.Empty(t, res.Modified.Edges)
}

func TestDiff_Symmetry(t *testing.T) {
	oldG := buildFileGraph(t,
		fileWithImports("src/a.ts", "./b"),
		fileWithImports("src/b.ts"),
	)
	newG := buildFileGraph(t,
		fileWithImports("src/a.ts"),
		fileWithImports("src/c.ts"),
	)

	forward := Diff(oldG, newG, Changeset{})
	backward := Diff(newG, oldG, Changeset{})

	assert.Equal(t, forward.Summary.NodesAdded, backward.Summary.NodesRemoved)
	assert.Equal(t, forward.Summary.NodesRemoved, backward.Summary.NodesAdded)
	assert.Equal(t, forward.Summary.EdgesAdded, backward.Summary.EdgesRemoved)
	assert.Equal(t, forward.Summary.EdgesRemoved, backward.Summary.EdgesAdded)
}

func TestDiff_DoesNotMutateInputs(t *testing.T) {
	oldG := buildFileGraph(t, fileWithImports("src/a.ts"))
	newG := buildFileGraph(t,
		fileWithImports("src/a.ts", "./b"),
		fileWithImports("src/b.ts"),
	)

	Diff(oldG, newG, Changeset{Modified: []string{"src/a.ts"}})

	for _, n := range newG.Nodes {
		assert.Equal(t, graph.StatusNormal, n.Status)
	}
	for _, e := range newG.Edges {
		assert.Equal(t, graph.StatusNormal, e.Status)
	}
}

func TestDiff_DetectsCycle(t *testing.T) {
	newG := buildFileGraph(t,
		fileWithImports("src/a.ts", "./b"),
		fileWithImports("src/b.ts", "./a"),
	)

	res := Diff(graph.NewGraph(), newG, Changeset{})

	require.True(t, res.Summary.HasCircularDependency)
	require.Len(t, res.Summary.Cycles, 1)

	cycle := res.Summary.Cycles[0]
	require.Len(t, cycle, 3, "two-file cycle reads (x, y, x)")
	assert.Equal(t, cycle[0], cycle[2], "cycle closes on its first node")
	assert.ElementsMatch(t, []string{"src/a.ts", "src/b.ts"}, cycle[:2])
}

func TestDiff_NoCycleInDAG(t *testing.T) {
	newG := buildFileGraph(t,
		fileWithImports("src/a.ts", "./b", "./c"),
		fileWithImports("src/b.ts", "./c"),
		fileWithImports("src/c.ts"),
	)

	res := Diff(graph.NewGraph(), newG, Changeset{})

	assert.False(t, res.Summary.HasCircularDependency, "diamond sharing is not a cycle")
	assert.Empty(t, res.Summary.Cycles)
}

func TestDiff_SelfImportCycle(t *testing.T) {
	g := graph.NewGraph()
	g.AddNode(&graph.Node{ID: "n1", Kind: graph.NodeHierarchy, Path: "src/a.ts", Status: graph.StatusNormal})
	g.AddEdge(&graph.Edge{Kind: graph.EdgeImport, From: "n1", To: "n1", Status: graph.StatusNormal})

	res := Diff(graph.NewGraph(), g, Changeset{})

	require.True(t, res.Summary.HasCircularDependency)
	require.Len(t, res.Summary.Cycles, 1)
	assert.Equal(t, []string{"src/a.ts", "src/a.ts"}, res.Summary.Cycles[0])
}

func TestDiff_NestedCycle(t *testing.T) {
	newG := buildFileGraph(t,
		fileWithImports("src/a.ts", "./b"),
		fileWithImports("src/b.ts", "./c"),
		fileWithImports("src/c.ts", "./a"),
	)

	res := Diff(graph.NewGraph(), newG, Changeset{})

	require.True(t, res.Summary.HasCircularDependency)
	require.Len(t, res.Summary.Cycles, 1)
	cycle := res.Summary.Cycles[0]
	require.Len(t, cycle, 4)
	assert.Equal(t, cycle[0], cycle[len(cycle)-1], "cycle closes on its first node")
}
