package generator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"archmap/internal/graph"
)

// MermaidGenerator renders graphs into Mermaid diagram text. Node paths are
// used as labels; the closed edge-kind set maps exhaustively to arrow
// styles, and diff statuses map to node classes.
type MermaidGenerator struct{}

// NewMermaidGenerator creates a generator.
func NewMermaidGenerator() *MermaidGenerator {
	return &MermaidGenerator{}
}

// Generate picks the diagram form for the graph: class diagrams for
// interface-level graphs, flowcharts for everything else.
func (m *MermaidGenerator) Generate(g *graph.Graph) string {
	for _, n := range g.Nodes {
		if n.Kind == graph.NodeAbstract {
			return m.GenerateClassDiagram(g)
		}
	}
	return m.GenerateFlowchart(g)
}

// GenerateFlowchart renders a file or hierarchy graph as a left-to-right
// flowchart. Output is sorted so identical graphs render identical text.
func (m *MermaidGenerator) GenerateFlowchart(g *graph.Graph) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("flowchart LR\n")

	nodes := sortedNodes(g)
	statusClasses := map[graph.Status][]string{}
	for _, n := range nodes {
		sb.WriteString(fmt.Sprintf("    %s[%q]\n", sanitizeMermaidID(n.ID), n.Path))
		if n.Status != graph.StatusNormal && n.Status != "" {
			statusClasses[n.Status] = append(statusClasses[n.Status], sanitizeMermaidID(n.ID))
		}
	}

	edges := sortedEdges(g)
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("    %s %s %s\n",
			sanitizeMermaidID(e.From), edgeArrow(e), sanitizeMermaidID(e.To)))
	}

	writeStatusClasses(&sb, statusClasses)
	sb.WriteString("```\n")
	return sb.String()
}

// GenerateClassDiagram renders an interface-level graph. Implement edges
// draw as inheritance, use edges as dependencies.
func (m *MermaidGenerator) GenerateClassDiagram(g *graph.Graph) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("classDiagram\n")

	names := make(map[string]string, len(g.Nodes))
	for _, n := range sortedNodes(g) {
		if n.Abstract == nil {
			continue
		}
		name := sanitizeMermaidID(n.Abstract.Name)
		names[n.ID] = name
		sb.WriteString(fmt.Sprintf("    class %s {\n", name))
		switch n.Abstract.Kind {
		case graph.AbstractInterface:
			sb.WriteString("        <<interface>>\n")
		case graph.AbstractEnum:
			sb.WriteString("        <<enumeration>>\n")
		case graph.AbstractType:
			sb.WriteString("        <<type>>\n")
		}
		sb.WriteString("    }\n")
	}

	for _, e := range sortedEdges(g) {
		from, okFrom := names[e.From]
		to, okTo := names[e.To]
		if !okFrom || !okTo {
			continue
		}
		switch e.Kind {
		case graph.EdgeImplement:
			sb.WriteString(fmt.Sprintf("    %s <|-- %s\n", to, from))
		case graph.EdgeUse:
			sb.WriteString(fmt.Sprintf("    %s ..> %s : uses\n", from, to))
		}
	}

	sb.WriteString("```\n")
	return sb.String()
}

func edgeArrow(e *graph.Edge) string {
	switch e.Kind {
	case graph.EdgeRender:
		if e.Render != nil && e.Render.SlotName != "" {
			return fmt.Sprintf("-.->|slot:%s|", e.Render.SlotName)
		}
		return "-.->"
	case graph.EdgeImplement:
		if e.Symbol != nil && e.Symbol.SymbolName != "" {
			return fmt.Sprintf("==>|implements %s|", e.Symbol.SymbolName)
		}
		return "==>"
	case graph.EdgeUse:
		if e.Symbol != nil && e.Symbol.SymbolName != "" {
			return fmt.Sprintf("-->|uses %s|", e.Symbol.SymbolName)
		}
		return "-->"
	default:
		return "-->"
	}
}

func writeStatusClasses(sb *strings.Builder, classes map[graph.Status][]string) {
	styles := []struct {
		status graph.Status
		class  string
		def    string
	}{
		{graph.StatusAdded, "addedNode", "fill:#e6ffec,stroke:#1a7f37"},
		{graph.StatusRemoved, "removedNode", "fill:#ffebe9,stroke:#cf222e,stroke-dasharray:4 3"},
		{graph.StatusModified, "modifiedNode", "fill:#fff8c5,stroke:#9a6700"},
	}
	for _, s := range styles {
		ids := classes[s.status]
		if len(ids) == 0 {
			continue
		}
		sort.Strings(ids)
		sb.WriteString(fmt.Sprintf("    classDef %s %s;\n", s.class, s.def))
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", strings.Join(ids, ","), s.class))
	}
}

func sortedNodes(g *graph.Graph) []*graph.Node {
	nodes := make([]*graph.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Path == nodes[j].Path {
			return nodes[i].ID < nodes[j].ID
		}
		return nodes[i].Path < nodes[j].Path
	})
	return nodes
}

func sortedEdges(g *graph.Graph) []*graph.Edge {
	edges := make([]*graph.Edge, len(g.Edges))
	copy(edges, g.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Kind < edges[j].Kind
	})
	return edges
}

var mermaidIDRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func sanitizeMermaidID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "node"
	}
	v = mermaidIDRe.ReplaceAllString(strings.ReplaceAll(v, "-", "_"), "_")
	if v[0] >= '0' && v[0] <= '9' {
		v = "n_" + v
	}
	return v
}
