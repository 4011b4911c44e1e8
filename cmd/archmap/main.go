package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"archmap/internal/config"
	"archmap/internal/crawler"
	"archmap/internal/diff"
	"archmap/internal/extractor"
	"archmap/internal/facts"
	"archmap/internal/generator"
	"archmap/internal/git"
	"archmap/internal/graph"
	"archmap/internal/hierarchy"
	"archmap/internal/query"
	"archmap/internal/resolver"
	"archmap/internal/server"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "archmap",
		Short: "Dependency graph and architecture diagram generator",
	}
	configPath string

	snapshotPath string

	diagramLevel    string
	diagramKinds    []string
	diagramMode     string
	diagramFocus    string
	diagramDepth    int
	diagramInternal string
	diagramFormat   string
	diagramOut      string

	diffBase  string
	diffLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "archmap.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Path to the facts snapshot (default from config)")

	diagramCmd.Flags().StringVarP(&diagramLevel, "level", "l", "file", "Graph level: architecture, module, component, file, interface")
	diagramCmd.Flags().StringSliceVarP(&diagramKinds, "kinds", "k", nil, "Edge kinds at file level: import, render, implement")
	diagramCmd.Flags().StringVarP(&diagramMode, "mode", "m", "global", "View mode: global, focused, neighbors")
	diagramCmd.Flags().StringVarP(&diagramFocus, "focus", "f", "", "Focus target for focused and neighbors modes")
	diagramCmd.Flags().IntVar(&diagramDepth, "depth", 1, "BFS depth for neighbors mode (0 = seeds only)")
	diagramCmd.Flags().StringVar(&diagramInternal, "internal-level", "file", "Granularity focused mode rebuilds at: file, interface")
	diagramCmd.Flags().StringVar(&diagramFormat, "format", "mermaid", "Output format: mermaid, json")
	diagramCmd.Flags().StringVarP(&diagramOut, "out", "o", "", "Write output to a file instead of stdout")

	diffCmd.Flags().StringVarP(&diffBase, "base", "b", "HEAD", "Git ref to compare against")
	diffCmd.Flags().StringVarP(&diffLevel, "level", "l", "file", "Graph level the diff is computed at")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if snapshotPath != "" {
		cfg.Output.Snapshot = snapshotPath
	}
	return cfg
}

func newEngine(cfg *config.Config) *query.Engine {
	cls := hierarchy.NewClassifierWithPatterns(
		cfg.Hierarchy.ArchitectureDirs,
		cfg.Hierarchy.SourceRoots,
	)
	return query.NewEngine(resolver.New(), cls, cfg.Project.Root)
}

func scanProject(cfg *config.Config) []*extractor.ParsedFile {
	ext := extractor.New()
	cr := crawler.New(ext, cfg.Project.Root, cfg.Project.IgnoreDirs...)

	var files []*extractor.ParsedFile
	if err := cr.ScanProject(cfg.Project.Root, func(f *extractor.ParsedFile) {
		files = append(files, f)
	}); err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	return files
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan the project and save an extraction facts snapshot",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if len(args) > 0 {
			cfg.Project.Root = args[0]
		}

		fmt.Printf("📂 Scanning directory: %s\n", cfg.Project.Root)
		start := time.Now()
		files := scanProject(cfg)
		fmt.Printf("✅ Extracted %d files in %v.\n", len(files), time.Since(start))

		out := cfg.Output.Snapshot
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			log.Fatalf("Failed to create snapshot directory: %v", err)
		}
		if err := facts.Save(out, files); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}
		fmt.Printf("🎉 Scan complete! Snapshot: %s\n", out)
	},
}

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Build a dependency graph and render it as Mermaid or JSON",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		files := scanProject(cfg)

		req := query.NewRequest()
		req.Level = graph.Level(diagramLevel)
		req.Mode = query.Mode(diagramMode)
		req.FocusKey = diagramFocus
		req.Depth = diagramDepth
		req.InternalLevel = graph.Level(diagramInternal)
		for _, k := range diagramKinds {
			req.Kinds = append(req.Kinds, graph.EdgeKind(strings.TrimSpace(k)))
		}

		engine := newEngine(cfg)
		g, err := engine.Run(files, req)
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}

		var output string
		if diagramFormat == "json" {
			jsonBytes, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				log.Fatalf("Failed to encode graph: %v", err)
			}
			output = string(jsonBytes)
		} else {
			gen := generator.NewMermaidGenerator()
			output = gen.Generate(g)
		}

		if diagramOut == "" {
			fmt.Println(output)
			return
		}
		if err := os.WriteFile(diagramOut, []byte(output), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("✅ Diagram written to %s (%d nodes, %d edges).\n", diagramOut, len(g.Nodes), len(g.Edges))
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the current project graph against the saved snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		oldFiles, err := facts.Load(cfg.Output.Snapshot)
		if err != nil {
			log.Fatalf("Failed to load baseline snapshot: %v", err)
		}

		newFiles := scanProject(cfg)

		changes, err := git.ChangedFiles(cfg.Project.Root, diffBase)
		if err != nil {
			log.Fatalf("Failed to read git changes: %v", err)
		}

		engine := newEngine(cfg)
		level := graph.Level(diffLevel)
		oldG, err := engine.Run(oldFiles, query.Request{Level: level})
		if err != nil {
			log.Fatalf("Failed to build baseline graph: %v", err)
		}
		newG, err := engine.Run(newFiles, query.Request{Level: level})
		if err != nil {
			log.Fatalf("Failed to build current graph: %v", err)
		}

		result := diff.Diff(oldG, newG, engine.TranslateChangeset(changes, level))
		s := result.Summary

		fmt.Printf("📊 Nodes: +%d ~%d -%d | Edges: +%d ~%d -%d\n",
			s.NodesAdded, s.NodesModified, s.NodesRemoved,
			s.EdgesAdded, s.EdgesModified, s.EdgesRemoved)

		if s.HasCircularDependency {
			fmt.Printf("⚠️  Circular dependencies detected: %d\n", len(s.Cycles))
			for _, cycle := range s.Cycles {
				fmt.Printf("  -> %s\n", strings.Join(cycle, " -> "))
			}
		}

		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode diff: %v", err)
		}
		fmt.Println(string(jsonBytes))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the graph tools over MCP stdio",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		srv := server.New(cfg)
		if err := srv.Run(context.Background()); err != nil {
			log.Fatalf("Server exited: %v", err)
		}
	},
}
