package extractor

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
)

// collector walks a parsed syntax tree and accumulates facts into a ParsedFile.
// Imports are collected in a first pass so that the name-to-specifier binding
// map is complete before class and JSX facts reference it.
type collector struct {
	src  []byte
	file *ParsedFile
	jsx  bool

	// bindings maps a local binding name (default import, named import,
	// namespace import) to the import specifier it came from.
	bindings map[string]string

	// seenImports dedupes import statements by specifier+flags.
	seenImports map[string]bool

	renderPos int
}

func newCollector(src []byte, relPath string, jsx bool) *collector {
	return &collector{
		src:         src,
		file:        &ParsedFile{Path: relPath},
		jsx:         jsx,
		bindings:    make(map[string]string),
		seenImports: make(map[string]bool),
	}
}

// collectImports records all static, type-only, dynamic, and re-export
// imports, and fills the local binding map.
func (c *collector) collectImports(n *sitter.Node) {
	switch n.Type() {
	case "import_statement":
		c.addImportStatement(n)
	case "export_statement":
		// export ... from "x" re-exports count as imports of x.
		if source := n.ChildByFieldName("source"); source != nil {
			c.addImport(ImportInfo{ImportPath: stringValue(source, c.src)})
		}
	case "call_expression":
		if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "import" {
			if args := n.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
				arg := args.NamedChild(0)
				if arg.Type() == "string" {
					c.addImport(ImportInfo{ImportPath: stringValue(arg, c.src), IsDynamic: true})
				}
			}
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		c.collectImports(n.NamedChild(i))
	}
}

func (c *collector) addImportStatement(n *sitter.Node) {
	source := n.ChildByFieldName("source")
	if source == nil {
		return
	}
	spec := stringValue(source, c.src)

	info := ImportInfo{ImportPath: spec}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "type" {
			info.IsTypeOnly = true
			break
		}
	}
	c.addImport(info)

	// Record local bindings for render and implement lookups.
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "import_clause" {
			continue
		}
		c.addClauseBindings(child, spec)
	}
}

func (c *collector) addClauseBindings(clause *sitter.Node, spec string) {
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case "identifier":
			// Default import.
			c.bindings[child.Content(c.src)] = spec
		case "namespace_import":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if id := child.NamedChild(j); id.Type() == "identifier" {
					c.bindings[id.Content(c.src)] = spec
				}
			}
		case "named_imports":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				is := child.NamedChild(j)
				if is.Type() != "import_specifier" {
					continue
				}
				local := is.ChildByFieldName("alias")
				if local == nil {
					local = is.ChildByFieldName("name")
				}
				if local != nil {
					c.bindings[local.Content(c.src)] = spec
				}
			}
		}
	}
}

func (c *collector) addImport(info ImportInfo) {
	if info.ImportPath == "" {
		return
	}
	key := info.ImportPath
	if info.IsTypeOnly {
		key += "|type"
	}
	if info.IsDynamic {
		key += "|dyn"
	}
	if c.seenImports[key] {
		return
	}
	c.seenImports[key] = true
	c.file.Imports = append(c.file.Imports, info)
}

// collectDeclarations records class implements facts, JSX usages, and
// type declarations in document order.
func (c *collector) collectDeclarations(n *sitter.Node) {
	switch n.Type() {
	case "class_declaration":
		c.addClass(n)
	case "interface_declaration":
		c.addInterface(n)
	case "type_alias_declaration":
		c.addTypeAlias(n)
	case "enum_declaration":
		c.addEnum(n)
	case "jsx_opening_element", "jsx_self_closing_element":
		if c.jsx {
			c.addRender(n)
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		c.collectDeclarations(n.NamedChild(i))
	}
}

func (c *collector) addClass(n *sitter.Node) {
	name := fieldContent(n, "name", c.src)
	if name == "" {
		return
	}

	var extends, implements []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "class_heritage" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			clause := child.NamedChild(j)
			switch clause.Type() {
			case "extends_clause":
				extends = append(extends, typeNames(clause, c.src)...)
			case "implements_clause":
				implements = append(implements, typeNames(clause, c.src)...)
			}
		}
	}

	c.file.Types = append(c.file.Types, TypeDefinition{
		Kind:       "class",
		Name:       name,
		IsExported: isExported(n),
		Extends:    extends,
		Implements: implements,
	})

	if len(implements) == 0 {
		return
	}
	imports := make(map[string]string)
	for _, iface := range implements {
		if spec, ok := c.bindings[iface]; ok {
			imports[iface] = spec
		}
	}
	c.file.Implements = append(c.file.Implements, ImplementInfo{
		ClassName:        name,
		Interfaces:       implements,
		InterfaceImports: imports,
	})
}

func (c *collector) addInterface(n *sitter.Node) {
	name := fieldContent(n, "name", c.src)
	if name == "" {
		return
	}

	var extends []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "extends_type_clause" {
			extends = append(extends, typeNames(child, c.src)...)
		}
	}

	var refs []string
	if body := n.ChildByFieldName("body"); body != nil {
		refs = typeReferences(body, c.src, name)
	}

	c.file.Types = append(c.file.Types, TypeDefinition{
		Kind:       "interface",
		Name:       name,
		IsExported: isExported(n),
		Extends:    extends,
		References: refs,
	})
}

func (c *collector) addTypeAlias(n *sitter.Node) {
	name := fieldContent(n, "name", c.src)
	if name == "" {
		return
	}
	var refs []string
	if value := n.ChildByFieldName("value"); value != nil {
		refs = typeReferences(value, c.src, name)
	}
	c.file.Types = append(c.file.Types, TypeDefinition{
		Kind:       "type",
		Name:       name,
		IsExported: isExported(n),
		References: refs,
	})
}

func (c *collector) addEnum(n *sitter.Node) {
	name := fieldContent(n, "name", c.src)
	if name == "" {
		return
	}
	c.file.Types = append(c.file.Types, TypeDefinition{
		Kind:       "enum",
		Name:       name,
		IsExported: isExported(n),
	})
}

func (c *collector) addRender(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(c.src)
	if name == "" {
		return
	}
	namespaced := strings.Contains(name, ".")

	// Lowercase single identifiers are intrinsic HTML elements, not components.
	if !namespaced && unicode.IsLower(rune(name[0])) {
		return
	}

	c.file.Renders = append(c.file.Renders, RenderInfo{
		ComponentName: name,
		Position:      c.renderPos,
		IsNamespaced:  namespaced,
		SlotName:      slotAttribute(n, c.src),
		Conditional:   isConditional(n),
	})
	c.renderPos++
}

// slotAttribute returns the value of a slot="..." attribute if present.
func slotAttribute(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		attr := n.NamedChild(i)
		if attr.Type() != "jsx_attribute" {
			continue
		}
		if attr.NamedChildCount() < 2 {
			continue
		}
		if attr.NamedChild(0).Content(src) != "slot" {
			continue
		}
		if value := attr.NamedChild(1); value.Type() == "string" {
			return stringValue(value, src)
		}
	}
	return ""
}

// isConditional reports whether the JSX element sits under a ternary or
// a short-circuit && guard.
func isConditional(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "ternary_expression":
			return true
		case "binary_expression":
			if op := p.ChildByFieldName("operator"); op != nil {
				if t := op.Type(); t == "&&" || t == "||" {
					return true
				}
			}
		case "statement_block", "program", "function_declaration", "arrow_function", "method_definition":
			return false
		}
	}
	return false
}

// typeNames collects the head identifier of each type in a heritage clause,
// unwrapping generics (Repository<User> yields Repository).
func typeNames(clause *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case "type_identifier", "identifier":
			names = append(names, child.Content(src))
		case "generic_type":
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(src))
			}
		case "member_expression", "nested_type_identifier":
			names = append(names, child.Content(src))
		}
	}
	return names
}

// typeReferences collects every distinct type identifier mentioned inside a
// type body or alias value, excluding the declaring name itself.
func typeReferences(n *sitter.Node, src []byte, self string) []string {
	seen := make(map[string]bool)
	var refs []string
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node.Type() == "type_identifier" {
			name := node.Content(src)
			if name != self && !seen[name] {
				seen[name] = true
				refs = append(refs, name)
			}
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(n)
	return refs
}

func fieldContent(n *sitter.Node, field string, src []byte) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(src)
}

func isExported(n *sitter.Node) bool {
	p := n.Parent()
	return p != nil && p.Type() == "export_statement"
}

// stringValue unwraps a string literal node to its inner text.
func stringValue(n *sitter.Node, src []byte) string {
	return strings.Trim(n.Content(src), "'\"`")
}
