package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"archmap/internal/graph"
	"archmap/internal/query"
)

func TestBuildRequest_Defaults(t *testing.T) {
	qr := buildRequest(BuildDiagramArgs{})

	assert.Equal(t, graph.LevelFile, qr.Level)
	assert.Equal(t, query.ModeGlobal, qr.Mode)
	assert.Equal(t, graph.LevelFile, qr.InternalLevel)
	assert.Equal(t, 1, qr.Depth, "absent depth keeps the default")
	assert.Empty(t, qr.Kinds)
}

func TestBuildRequest_ZeroDepthPassesThrough(t *testing.T) {
	zero := 0
	qr := buildRequest(BuildDiagramArgs{
		Mode:     "neighbors",
		FocusKey: "src/a.ts",
		Depth:    &zero,
	})

	assert.Equal(t, 0, qr.Depth, "explicit zero means seeds only, not the default")
}

func TestBuildRequest_FocusedInterfaceDrillDown(t *testing.T) {
	qr := buildRequest(BuildDiagramArgs{
		Level:         "module",
		Mode:          "focused",
		FocusKey:      "auth",
		InternalLevel: "interface",
		Kinds:         []string{"import", "render"},
	})

	assert.Equal(t, graph.LevelModule, qr.Level)
	assert.Equal(t, query.ModeFocused, qr.Mode)
	assert.Equal(t, graph.LevelInterface, qr.InternalLevel)
	assert.Equal(t, []graph.EdgeKind{graph.EdgeImport, graph.EdgeRender}, qr.Kinds)
}
