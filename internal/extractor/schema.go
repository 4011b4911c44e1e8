package extractor

// ParsedFile is the universal container for all facts extracted from a
// single source file. It is the only input the graph builders consume.
// Optional fact categories are simply empty when a file contributes
// nothing to them.
type ParsedFile struct {
	Path       string           `json:"path"`                 // Repo-relative slash path
	Imports    []ImportInfo     `json:"imports,omitempty"`    // All import statements
	Implements []ImplementInfo  `json:"implements,omitempty"` // Class "implements" clauses
	Renders    []RenderInfo     `json:"renders,omitempty"`    // JSX component usages
	Types      []TypeDefinition `json:"types,omitempty"`      // Top-level type declarations
	Hierarchy  *HierarchyInfo   `json:"hierarchy,omitempty"`  // Optional pre-computed classification
}

// ImportInfo describes one import statement.
type ImportInfo struct {
	ImportPath string `json:"import_path"`            // The specifier as written (e.g. "./util", "@/api", "react")
	IsTypeOnly bool   `json:"is_type_only,omitempty"` // import type { ... }
	IsDynamic  bool   `json:"is_dynamic,omitempty"`   // import("...")
}

// ImplementInfo describes one class declaration and the interfaces it implements.
type ImplementInfo struct {
	ClassName  string   `json:"class_name"`
	Interfaces []string `json:"interfaces"`
	// InterfaceImports maps an implemented interface name to the import
	// specifier it was imported through. Names absent from the map were
	// declared in the same file.
	InterfaceImports map[string]string `json:"interface_imports,omitempty"`
}

// RenderInfo describes one JSX component usage.
type RenderInfo struct {
	ComponentName string `json:"component_name"`
	Position      int    `json:"position"`                // Zero-based order of appearance in the file
	IsNamespaced  bool   `json:"is_namespaced,omitempty"` // e.g. <UI.Button>
	SlotName      string `json:"slot_name,omitempty"`
	Conditional   bool   `json:"conditional,omitempty"` // Rendered under a ternary or && guard
}

// TypeDefinition describes one top-level type declaration.
type TypeDefinition struct {
	Kind       string   `json:"kind"` // "interface", "type", "class", "enum"
	Name       string   `json:"name"`
	IsExported bool     `json:"is_exported"`
	Extends    []string `json:"extends,omitempty"`
	Implements []string `json:"implements,omitempty"`
	References []string `json:"references,omitempty"` // Type names used in properties, unions, etc.
}

// HierarchyInfo is the structural classification of a file.
type HierarchyInfo struct {
	Level        string `json:"level"` // Deepest level the classifier could determine
	Architecture string `json:"architecture,omitempty"`
	Module       string `json:"module,omitempty"`
	Component    string `json:"component,omitempty"`
}
