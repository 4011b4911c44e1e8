package resolver

import "strings"

// SpecifierKind classifies an import specifier before resolution.
type SpecifierKind string

const (
	// SpecifierPath is a relative or root-relative path ("./x", "../y", "/z").
	SpecifierPath SpecifierKind = "path"
	// SpecifierBuiltin is a language/runtime built-in module ("fs", "node:path").
	SpecifierBuiltin SpecifierKind = "builtin"
	// SpecifierPackage is a bare third-party package name ("react", "@scope/pkg").
	SpecifierPackage SpecifierKind = "package"
	// SpecifierNonPath is a short string literal almost certainly misidentified
	// as an import upstream.
	SpecifierNonPath SpecifierKind = "non-path"
)

// Classify is a pluggable predicate deciding how an import specifier should
// be treated. Only SpecifierPath specifiers (and alias matches, which the
// resolver checks separately) warrant a warning when they fail to resolve.
type Classify func(specifier string) SpecifierKind

// nodeBuiltins lists runtime built-in module names that never resolve to
// project files.
var nodeBuiltins = map[string]bool{
	"assert": true, "buffer": true, "child_process": true, "cluster": true,
	"crypto": true, "dns": true, "events": true, "fs": true, "http": true,
	"https": true, "net": true, "os": true, "path": true, "process": true,
	"querystring": true, "readline": true, "stream": true, "string_decoder": true,
	"timers": true, "tls": true, "url": true, "util": true, "v8": true,
	"vm": true, "worker_threads": true, "zlib": true,
}

// DefaultClassify is the default specifier classifier.
func DefaultClassify(specifier string) SpecifierKind {
	s := strings.TrimSpace(specifier)
	if s == "" {
		return SpecifierNonPath
	}
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "/") {
		return SpecifierPath
	}
	if strings.HasPrefix(s, "node:") || nodeBuiltins[s] {
		return SpecifierBuiltin
	}
	if !strings.Contains(s, "/") && !strings.Contains(s, ".") {
		// Short or malformed no-slash bare names are stray literals. The
		// heuristic applies only here: anything carrying a slash or dot is
		// a plausible package or alias specifier.
		if len(s) <= 2 || !validPackageName(strings.TrimPrefix(s, "@")) {
			return SpecifierNonPath
		}
		return SpecifierPackage
	}
	return SpecifierPackage
}

func validPackageName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == '/':
		default:
			return false
		}
	}
	return true
}
