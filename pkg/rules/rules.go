// Package rules defines the canonical migration rule table for upgrading
// PrimeNG usages from v17 to v18. The table is the single source of truth
// shared by the CLI and the programmatic API.
package rules

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Category groups rules by the kind of rename they perform.
type Category string

const (
	CategoryImport    Category = "import"    // module import path renames
	CategoryModule    Category = "module"    // Angular module class renames
	CategorySelector  Category = "selector"  // template tag renames
	CategoryAttribute Category = "attribute" // directive/attribute renames
	CategoryCSS       Category = "css"       // CSS class renames and removals
	CategoryStructure Category = "structure" // element removals needing tag balancing
)

// TransformFunc is a custom transformation for rules that cannot be
// expressed as a single regex substitution. It returns the new content,
// the number of changes made, and any diagnostics for the operator.
type TransformFunc func(path, content string) (out string, count int, diags []string)

// Rule is a single old-pattern to new-pattern substitution with its
// applicable file types. Rules are defined statically at startup and
// never mutated.
type Rule struct {
	// Name is a stable identifier usable in config only/skip filters.
	Name string

	// Description is shown to the operator and used in commit messages.
	Description string

	// Category groups the rule for listing.
	Category Category

	// Extensions is the set of file extensions the rule applies to,
	// including the leading dot.
	Extensions []string

	// Pattern and Replacement drive the default regex substitution.
	// Patterns keep word-boundary and tag-delimiter discipline so that
	// applying a rule twice yields the same result as applying it once.
	Pattern     *regexp.Regexp
	Replacement string

	// Transform, when set, replaces the regex substitution entirely.
	Transform TransformFunc
}

// AppliesTo reports whether the rule covers the file at path, judged by
// extension only. Content matching is the engine's job.
func (r Rule) AppliesTo(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Matches reports whether the rule would change the given content.
func (r Rule) Matches(path, content string) bool {
	if r.Transform != nil {
		out, n, _ := r.Transform(path, content)
		return n > 0 || out != content
	}
	return r.Pattern.MatchString(content)
}

// Apply rewrites content per the rule. A file with no matches comes back
// byte-for-byte unchanged with a zero count.
func (r Rule) Apply(path, content string) (string, int, []string) {
	if r.Transform != nil {
		return r.Transform(path, content)
	}
	count := len(r.Pattern.FindAllStringIndex(content, -1))
	if count == 0 {
		return content, 0, nil
	}
	return r.Pattern.ReplaceAllString(content, r.Replacement), count, nil
}
