package resolver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// extensions are tried in order when a literal candidate path is not a
// known file, mirroring bundler resolution order.
var extensions = []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", "/index.ts", "/index.js"}

// aliasConfigFiles is the fixed list of config filenames probed for path
// alias mappings, first match wins.
var aliasConfigFiles = []string{"tsconfig.json", "jsconfig.json"}

const aliasCacheSize = 16

// FileSet is the set of known project file paths (repo-relative, slash
// separated).
type FileSet map[string]bool

// NewFileSet builds a FileSet from a path list.
func NewFileSet(paths []string) FileSet {
	set := make(FileSet, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}

// aliasRule maps a specifier prefix (or exact specifier) to a base path
// relative to the project root.
type aliasRule struct {
	Prefix string
	Target string
	Exact  bool
}

// Resolver resolves import specifiers against the known file set. Alias
// tables are loaded lazily from the project's config file and cached per
// project root; the cache is owned by the resolver so separate analysis
// sessions do not leak configuration into each other.
type Resolver struct {
	// Classify decides which specifiers are even worth resolving.
	// Swappable so the heuristics can be tested and tuned independently.
	Classify Classify

	aliases *lru.Cache[string, []aliasRule]
}

// New creates a resolver with the default specifier classifier.
func New() *Resolver {
	cache, _ := lru.New[string, []aliasRule](aliasCacheSize)
	return &Resolver{
		Classify: DefaultClassify,
		aliases:  cache,
	}
}

// Resolve maps an import specifier in fromFile to the repo-relative path of
// the target file. The second return is false when the specifier does not
// resolve to a known project file; that is an expected outcome for external
// packages and never an error.
func (r *Resolver) Resolve(fromFile, specifier string, known FileSet, projectRoot string) (string, bool) {
	switch r.Classify(specifier) {
	case SpecifierPath:
		var base string
		if strings.HasPrefix(specifier, "/") {
			base = path.Clean(strings.TrimPrefix(specifier, "/"))
		} else {
			base = path.Join(path.Dir(fromFile), specifier)
		}
		return tryCandidates(base, known)
	case SpecifierBuiltin:
		return "", false
	}

	// Bare specifier: only resolvable through a path alias. Non-path
	// classified strings fall through too; an alias prefix match overrides
	// the heuristic.
	if projectRoot == "" {
		return "", false
	}
	for _, rule := range r.aliasTable(projectRoot) {
		if rule.Exact {
			if specifier == rule.Prefix {
				if p, ok := tryCandidates(rule.Target, known); ok {
					return p, true
				}
			}
			continue
		}
		if strings.HasPrefix(specifier, rule.Prefix) {
			base := path.Join(rule.Target, strings.TrimPrefix(specifier, rule.Prefix))
			if p, ok := tryCandidates(base, known); ok {
				return p, true
			}
		}
	}
	return "", false
}

// ShouldWarn reports whether a failed resolution of the specifier deserves a
// diagnostic. Builtins, bare packages, and non-path literals are expected to
// be unresolvable and stay silent.
func (r *Resolver) ShouldWarn(specifier, projectRoot string) bool {
	switch r.Classify(specifier) {
	case SpecifierPath:
		return true
	case SpecifierBuiltin:
		return false
	}

	// A bare specifier that matches a configured alias prefix was meant to
	// be a project-internal import.
	if projectRoot == "" {
		return false
	}
	for _, rule := range r.aliasTable(projectRoot) {
		if rule.Exact && specifier == rule.Prefix {
			return true
		}
		if !rule.Exact && strings.HasPrefix(specifier, rule.Prefix) {
			return true
		}
	}
	return false
}

// ClearCache drops all cached alias tables. Needed only when project
// configuration changes within one process lifetime.
func (r *Resolver) ClearCache() {
	r.aliases.Purge()
}

func tryCandidates(base string, known FileSet) (string, bool) {
	if known[base] {
		return base, true
	}
	for _, ext := range extensions {
		if candidate := base + ext; known[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// aliasTable returns the alias rules for a project root, loading and caching
// them on first use.
func (r *Resolver) aliasTable(projectRoot string) []aliasRule {
	if rules, ok := r.aliases.Get(projectRoot); ok {
		return rules
	}
	rules := loadAliases(projectRoot)
	r.aliases.Add(projectRoot, rules)
	return rules
}

func loadAliases(projectRoot string) []aliasRule {
	for _, name := range aliasConfigFiles {
		configPath := filepath.Join(projectRoot, name)
		data, err := os.ReadFile(configPath)
		if err != nil {
			continue
		}
		rules, err := parseAliasConfig(data)
		if err != nil {
			// Malformed config degrades to no aliases instead of aborting
			// the whole build.
			slog.Warn("failed to parse alias config, proceeding without aliases",
				"path", configPath, "error", err)
			return nil
		}
		return rules
	}
	return nil
}

type tsconfig struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

func parseAliasConfig(data []byte) ([]aliasRule, error) {
	var cfg tsconfig
	if err := json.Unmarshal(normalizeJSONC(data), &cfg); err != nil {
		return nil, fmt.Errorf("invalid alias config: %w", err)
	}

	baseURL := cfg.CompilerOptions.BaseURL
	if baseURL == "" {
		baseURL = "."
	}

	rules := make([]aliasRule, 0, len(cfg.CompilerOptions.Paths))
	for pattern, targets := range cfg.CompilerOptions.Paths {
		if len(targets) == 0 {
			continue
		}
		target := targets[0]
		if strings.HasSuffix(pattern, "*") {
			rules = append(rules, aliasRule{
				Prefix: strings.TrimSuffix(pattern, "*"),
				Target: path.Join(baseURL, strings.TrimSuffix(target, "*")),
			})
		} else {
			rules = append(rules, aliasRule{
				Prefix: pattern,
				Target: path.Join(baseURL, target),
				Exact:  true,
			})
		}
	}

	// Longest prefix first so "@app/*" beats "@/*" style overlaps.
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].Prefix) == len(rules[j].Prefix) {
			return rules[i].Prefix < rules[j].Prefix
		}
		return len(rules[i].Prefix) > len(rules[j].Prefix)
	})
	return rules, nil
}

var (
	lineCommentRe   = regexp.MustCompile(`(?m)^\s*//.*$`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// normalizeJSONC tolerates the comment and trailing-comma extensions common
// in tsconfig files.
func normalizeJSONC(data []byte) []byte {
	data = blockCommentRe.ReplaceAll(data, nil)
	data = lineCommentRe.ReplaceAll(data, nil)
	data = trailingCommaRe.ReplaceAll(data, []byte("$1"))
	return data
}
