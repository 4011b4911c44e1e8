package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"archmap/internal/diff"
	"archmap/internal/facts"
	"archmap/internal/generator"
	"archmap/internal/git"
	"archmap/internal/graph"
	"archmap/internal/query"
)

// Arguments structs

type BuildDiagramArgs struct {
	Level         string   `json:"level" jsonschema:"description:Graph level: architecture, module, component, file, or interface. Defaults to file"`
	Kinds         []string `json:"kinds" jsonschema:"description:Edge kinds to include at file level: import, render, implement. Defaults to import only"`
	Mode          string   `json:"mode" jsonschema:"description:View mode: global, focused, or neighbors. Defaults to global"`
	FocusKey      string   `json:"focus_key" jsonschema:"description:Focus target for focused and neighbors modes"`
	Depth         *int     `json:"depth" jsonschema:"description:BFS expansion depth for neighbors mode. 0 means seeds only. Defaults to 1"`
	InternalLevel string   `json:"internal_level" jsonschema:"description:Granularity focused mode rebuilds at: file or interface. Defaults to file"`
	Format        string   `json:"format" jsonschema:"description:Output format: mermaid or json. Defaults to mermaid"`
}

type DiffArchitectureArgs struct {
	BaseRef  string `json:"base_ref" jsonschema:"required,description:Git ref the current tree is compared against (e.g. main or HEAD~1)"`
	Snapshot string `json:"snapshot" jsonschema:"description:Path to the baseline facts snapshot. Defaults to the configured snapshot path"`
	Level    string `json:"level" jsonschema:"description:Graph level the diff is computed at. Defaults to file"`
}

// buildRequest maps tool arguments onto a query request. An absent depth
// keeps the request default; an explicit 0 passes through as seeds-only.
func buildRequest(args BuildDiagramArgs) query.Request {
	qr := query.NewRequest()
	if args.Level != "" {
		qr.Level = graph.Level(args.Level)
	}
	if args.Mode != "" {
		qr.Mode = query.Mode(args.Mode)
	}
	if args.InternalLevel != "" {
		qr.InternalLevel = graph.Level(args.InternalLevel)
	}
	qr.FocusKey = args.FocusKey
	if args.Depth != nil {
		qr.Depth = *args.Depth
	}
	for _, k := range args.Kinds {
		qr.Kinds = append(qr.Kinds, graph.EdgeKind(k))
	}
	return qr
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "build_diagram",
		Description: "Scans the project and returns a dependency graph as a Mermaid diagram or JSON",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args BuildDiagramArgs) (*mcp.CallToolResult, any, error) {
		files, err := s.scanProject()
		if err != nil {
			return errorResult(fmt.Sprintf("Scan failed: %v", err)), nil, nil
		}

		g, err := s.engine.Run(files, buildRequest(args))
		if err != nil {
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}

		if args.Format == "json" {
			jsonBytes, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return errorResult(fmt.Sprintf("Failed to encode graph: %v", err)), nil, nil
			}
			return textResult(string(jsonBytes)), nil, nil
		}

		gen := generator.NewMermaidGenerator()
		return textResult(gen.Generate(g)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "diff_architecture",
		Description: "Compares the current project graph against a baseline snapshot and reports added, removed, and modified elements plus dependency cycles",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DiffArchitectureArgs) (*mcp.CallToolResult, any, error) {
		snapshotPath := args.Snapshot
		if snapshotPath == "" {
			snapshotPath = s.cfg.Output.Snapshot
		}

		oldFiles, err := facts.Load(snapshotPath)
		if err != nil {
			return errorResult(fmt.Sprintf("Failed to load baseline snapshot: %v", err)), nil, nil
		}

		newFiles, err := s.scanProject()
		if err != nil {
			return errorResult(fmt.Sprintf("Scan failed: %v", err)), nil, nil
		}

		changes, err := git.ChangedFiles(s.cfg.Project.Root, args.BaseRef)
		if err != nil {
			return errorResult(fmt.Sprintf("Failed to read git changes: %v", err)), nil, nil
		}

		level := graph.LevelFile
		if args.Level != "" {
			level = graph.Level(args.Level)
		}

		oldG, err := s.engine.Run(oldFiles, query.Request{Level: level})
		if err != nil {
			return errorResult(fmt.Sprintf("Failed to build baseline graph: %v", err)), nil, nil
		}
		newG, err := s.engine.Run(newFiles, query.Request{Level: level})
		if err != nil {
			return errorResult(fmt.Sprintf("Failed to build current graph: %v", err)), nil, nil
		}

		result := diff.Diff(oldG, newG, s.engine.TranslateChangeset(changes, level))

		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("Failed to encode diff: %v", err)), nil, nil
		}
		return textResult(string(jsonBytes)), nil, nil
	})
}
