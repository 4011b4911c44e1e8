package crawler

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"archmap/internal/extractor"
)

// Crawler scans a project directory for source files and streams extraction
// results back through a callback, so large trees never buffer fully in memory.
type Crawler struct {
	extractor *extractor.Extractor
	ignored   []string
	gitignore *ignore.GitIgnore
}

// DefaultIgnoredDirs are skipped during traversal regardless of .gitignore.
var DefaultIgnoredDirs = []string{".git", "node_modules", "dist", "build", "coverage", "vendor"}

// New creates a crawler rooted on the given extractor. If root contains a
// .gitignore file its rules are honored in addition to the default dir skips.
func New(ext *extractor.Extractor, root string, extraIgnored ...string) *Crawler {
	c := &Crawler{
		extractor: ext,
		ignored:   append(append([]string{}, DefaultIgnoredDirs...), extraIgnored...),
	}

	giPath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(giPath); err == nil {
		gi, err := ignore.CompileIgnoreFile(giPath)
		if err != nil {
			slog.Warn("failed to parse .gitignore, continuing without it", "path", giPath, "error", err)
		} else {
			c.gitignore = gi
		}
	}
	return c
}

// ScanProject walks root and invokes onFile for every supported source file,
// passing the repo-relative slash path. Extraction failures on individual
// files are logged and skipped so one unparsable file never aborts a scan.
func (c *Crawler) ScanProject(root string, onFile func(*extractor.ParsedFile)) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			if c.gitignore != nil && rel != "." && c.gitignore.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !extractor.Supported(path) {
			return nil
		}
		if c.gitignore != nil && c.gitignore.MatchesPath(rel) {
			return nil
		}

		parsed, extractErr := c.extractor.ExtractFile(path, rel)
		if extractErr != nil {
			slog.Warn("failed to extract file, skipping", "path", rel, "error", extractErr)
			return nil
		}

		onFile(parsed)
		return nil
	})
}
