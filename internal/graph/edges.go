package graph

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"archmap/internal/extractor"
	"archmap/internal/resolver"
)

// Edge factories share one policy: a reference that does not resolve to a
// known file is dropped, never emitted as an edge to a missing node.

// importEdges emits one import edge per distinct resolved (from, to) pair.
// Duplicate import statements, type-only variants, and dynamic variants of
// the same pair collapse into a single edge.
func (b *Builder) importEdges(files []*extractor.ParsedFile, known resolver.FileSet, ids map[string]string) []*Edge {
	var edges []*Edge
	seen := make(map[string]bool)

	for _, f := range files {
		for _, imp := range f.Imports {
			target, ok := b.resolver.Resolve(f.Path, imp.ImportPath, known, b.projectRoot)
			if !ok {
				if b.resolver.ShouldWarn(imp.ImportPath, b.projectRoot) {
					slog.Warn("unresolved import", "file", f.Path, "specifier", imp.ImportPath)
				}
				continue
			}
			from, to := ids[f.Path], ids[target]
			key := from + "->" + to
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, &Edge{
				Kind:   EdgeImport,
				From:   from,
				To:     to,
				Status: StatusNormal,
			})
		}
	}
	return edges
}

// implementEdges emits one implement edge per (from, to, interface name)
// triple. Interfaces declared in the implementing file itself are not an
// architectural dependency and are skipped without a warning.
func (b *Builder) implementEdges(files []*extractor.ParsedFile, known resolver.FileSet, ids map[string]string) []*Edge {
	var edges []*Edge
	seen := make(map[string]bool)

	for _, f := range files {
		for _, impl := range f.Implements {
			for _, iface := range impl.Interfaces {
				importPath, ok := impl.InterfaceImports[iface]
				if !ok {
					slog.Debug("interface declared in same file, skipping",
						"file", f.Path, "class", impl.ClassName, "interface", iface)
					continue
				}
				target, ok := b.resolver.Resolve(f.Path, importPath, known, b.projectRoot)
				if !ok {
					slog.Warn("cannot locate implemented interface, skipping",
						"file", f.Path, "interface", iface, "specifier", importPath)
					continue
				}
				from, to := ids[f.Path], ids[target]
				key := fmt.Sprintf("%s->%s:%s", from, to, iface)
				if seen[key] {
					continue
				}
				seen[key] = true
				edges = append(edges, &Edge{
					Kind:   EdgeImplement,
					From:   from,
					To:     to,
					Status: StatusNormal,
					Symbol: &SymbolAttrs{SymbolName: iface, ImportPath: importPath},
				})
			}
		}
	}
	return edges
}

// renderEdges emits one render edge per (from, to, position) triple. The
// same child component may legitimately render at several positions, but
// never twice at the same one.
func (b *Builder) renderEdges(files []*extractor.ParsedFile, known resolver.FileSet, ids map[string]string) []*Edge {
	var edges []*Edge
	seen := make(map[string]bool)

	for _, f := range files {
		nameToImport := importNameMap(f.Imports)
		for _, r := range f.Renders {
			base := r.ComponentName
			if r.IsNamespaced {
				base = strings.SplitN(base, ".", 2)[0]
			}
			importPath, ok := nameToImport[base]
			if !ok {
				slog.Warn("rendered component has no matching import, skipping",
					"file", f.Path, "component", r.ComponentName)
				continue
			}
			target, ok := b.resolver.Resolve(f.Path, importPath, known, b.projectRoot)
			if !ok {
				if b.resolver.ShouldWarn(importPath, b.projectRoot) {
					slog.Warn("cannot locate rendered component, skipping",
						"file", f.Path, "component", r.ComponentName, "specifier", importPath)
				}
				continue
			}
			from, to := ids[f.Path], ids[target]
			key := fmt.Sprintf("%s->%s:%d", from, to, r.Position)
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, &Edge{
				Kind:   EdgeRender,
				From:   from,
				To:     to,
				Status: StatusNormal,
				Render: &RenderAttrs{
					Position:    r.Position,
					SlotName:    r.SlotName,
					Conditional: r.Conditional,
				},
			})
		}
	}
	return edges
}

// importNameMap maps probable local component names to import specifiers by
// taking the last path segment of each import, stripped of its extension.
// This is a bare-name heuristic: "./components/Button" matches "Button".
func importNameMap(imports []extractor.ImportInfo) map[string]string {
	m := make(map[string]string, len(imports))
	for _, imp := range imports {
		base := path.Base(imp.ImportPath)
		base = strings.TrimSuffix(base, path.Ext(base))
		if base == "" || base == "." || base == "/" {
			continue
		}
		if _, exists := m[base]; !exists {
			m[base] = imp.ImportPath
		}
	}
	return m
}
