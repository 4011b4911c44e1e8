package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor turns source files into ParsedFile fact records using
// language-specific extractors.
type Extractor struct{}

// New creates a new extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractFile parses a single source file and extracts all dependency facts.
// relPath is the repo-relative slash path recorded on the resulting ParsedFile;
// absPath is where the file is read from.
func (e *Extractor) ExtractFile(absPath, relPath string) (*ParsedFile, error) {
	sourceCode, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", absPath, err)
	}
	return e.Extract(sourceCode, relPath)
}

// Extract parses source bytes and extracts all dependency facts.
func (e *Extractor) Extract(sourceCode []byte, relPath string) (*ParsedFile, error) {
	langExt, err := languageFor(relPath)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(langExt.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", relPath, err)
	}
	defer tree.Close()

	c := newCollector(sourceCode, relPath, langExt.SupportsJSX())
	c.collectImports(tree.RootNode())
	c.collectDeclarations(tree.RootNode())
	return c.file, nil
}

// languageFor selects the language extractor from the file extension.
func languageFor(path string) (LanguageExtractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ts", ".mts", ".cts":
		return &TypeScriptExtractor{}, nil
	case ".tsx":
		return &TypeScriptExtractor{JSX: true}, nil
	case ".js", ".mjs", ".cjs":
		return &JavaScriptExtractor{}, nil
	case ".jsx":
		return &JavaScriptExtractor{JSX: true}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// Supported reports whether the extractor can handle the given file path.
func Supported(path string) bool {
	_, err := languageFor(path)
	return err == nil
}
