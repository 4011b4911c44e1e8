package hierarchy

import (
	"path"
	"strings"

	"archmap/internal/extractor"
)

// Default directory patterns. Container dirs mark multi-package layouts
// (the segment after them names an architecture); source roots are skipped
// before module/component segments are read.
var (
	DefaultArchitectureDirs = []string{"packages", "apps", "services", "libs"}
	DefaultSourceRoots      = []string{"src", "lib", "source"}
)

// Classifier derives a file's architecture/module/component membership from
// its directory path. Classification is a pure function of the path string;
// calling it repeatedly for the same file is cheap and side-effect free.
type Classifier struct {
	architectureDirs map[string]bool
	sourceRoots      map[string]bool
}

// NewClassifier creates a classifier with the default directory patterns.
func NewClassifier() *Classifier {
	return NewClassifierWithPatterns(DefaultArchitectureDirs, DefaultSourceRoots)
}

// NewClassifierWithPatterns creates a classifier with custom patterns.
// Empty slices fall back to the defaults.
func NewClassifierWithPatterns(architectureDirs, sourceRoots []string) *Classifier {
	if len(architectureDirs) == 0 {
		architectureDirs = DefaultArchitectureDirs
	}
	if len(sourceRoots) == 0 {
		sourceRoots = DefaultSourceRoots
	}
	c := &Classifier{
		architectureDirs: make(map[string]bool, len(architectureDirs)),
		sourceRoots:      make(map[string]bool, len(sourceRoots)),
	}
	for _, d := range architectureDirs {
		c.architectureDirs[d] = true
	}
	for _, d := range sourceRoots {
		c.sourceRoots[d] = true
	}
	return c
}

// Classify returns the hierarchy membership for a repo-relative slash path.
// Architecture is only set for files inside a recognized multi-package
// layout; there is no fallback. Module and component come from the first
// one or two directory segments under the source root.
func (c *Classifier) Classify(filePath string) extractor.HierarchyInfo {
	segs := strings.Split(path.Clean(filePath), "/")
	if len(segs) == 0 {
		return extractor.HierarchyInfo{Level: "file"}
	}
	dirs := segs[:len(segs)-1]

	info := extractor.HierarchyInfo{Level: "file"}

	i := 0
	for j := 0; j < len(dirs)-1; j++ {
		if c.architectureDirs[dirs[j]] {
			info.Architecture = dirs[j+1]
			i = j + 2
			break
		}
	}

	// Skip source roots between the architecture dir and the module dir.
	for i < len(dirs) && c.sourceRoots[dirs[i]] {
		i++
	}

	if i < len(dirs) {
		info.Module = dirs[i]
		info.Level = "module"
		i++
	}
	if i < len(dirs) {
		info.Component = dirs[i]
		info.Level = "component"
	}

	return info
}
