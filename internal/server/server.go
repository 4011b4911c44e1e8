package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"archmap/internal/config"
	"archmap/internal/crawler"
	"archmap/internal/extractor"
	"archmap/internal/hierarchy"
	"archmap/internal/query"
	"archmap/internal/resolver"
)

const serverVersion = "0.1.0"

// Server exposes graph construction and diffing over MCP stdio.
type Server struct {
	mcpServer *mcp.Server
	cfg       *config.Config
	extractor *extractor.Extractor
	engine    *query.Engine
}

// New builds a server bound to the configured project root.
func New(cfg *config.Config) *Server {
	ext := extractor.New()

	cls := hierarchy.NewClassifierWithPatterns(
		cfg.Hierarchy.ArchitectureDirs,
		cfg.Hierarchy.SourceRoots,
	)

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "archmap",
			Version: serverVersion,
		}, nil),
		cfg:       cfg,
		extractor: ext,
		engine:    query.NewEngine(resolver.New(), cls, cfg.Project.Root),
	}

	s.registerTools()
	s.registerResources()
	return s
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// scanProject walks the configured root and returns extraction facts
// for every supported source file.
func (s *Server) scanProject() ([]*extractor.ParsedFile, error) {
	c := crawler.New(s.extractor, s.cfg.Project.Root, s.cfg.Project.IgnoreDirs...)

	var files []*extractor.ParsedFile
	err := c.ScanProject(s.cfg.Project.Root, func(f *extractor.ParsedFile) {
		files = append(files, f)
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
