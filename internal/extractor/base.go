package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// LanguageExtractor defines the interface each supported language must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	SupportsJSX() bool
}

// TypeScriptExtractor implements LanguageExtractor for TypeScript and TSX.
type TypeScriptExtractor struct {
	JSX bool
}

func (t *TypeScriptExtractor) GetLanguage() *sitter.Language {
	if t.JSX {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

func (t *TypeScriptExtractor) SupportsJSX() bool { return t.JSX }

// JavaScriptExtractor implements LanguageExtractor for JavaScript and JSX.
// The javascript grammar parses JSX natively, so both variants share it.
type JavaScriptExtractor struct {
	JSX bool
}

func (j *JavaScriptExtractor) GetLanguage() *sitter.Language {
	return javascript.GetLanguage()
}

func (j *JavaScriptExtractor) SupportsJSX() bool { return true }
