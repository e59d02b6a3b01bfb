package rules

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// classAttrRe matches a class or styleClass attribute together with the
// whitespace that precedes it, so an emptied attribute can be dropped
// without leaving a double space behind.
var classAttrRe = regexp.MustCompile(`\s?(?:class|styleClass)\s*=\s*"[^"]*"`)

var classAttrValueRe = regexp.MustCompile(`^(\s?)((?:class|styleClass)\s*=\s*")([^"]*)(")$`)

// removeClassToken builds a transform that strips a removed utility class.
//
// Markup policy: the token is removed from class/styleClass attribute
// lists, remaining tokens are rejoined with single spaces, and an
// attribute left empty is dropped entirely.
//
// Stylesheet policy: a rule block whose sole selector is the class is
// deleted whole; in compound selectors only the class token is removed.
// A sole selector whose block cannot be deleted safely (nested braces,
// pseudo-classes) is left in place and reported, never half-stripped.
func removeClassToken(token string) TransformFunc {
	// \b alone treats "-" as a boundary, which would let p-fluid match
	// inside p-fluid-like. Require a non-class character on both sides.
	tokenRe := regexp.MustCompile(`(^|[^-\w])` + regexp.QuoteMeta(token) + `($|[^-\w])`)
	soleBlockRe := regexp.MustCompile(`(?m)^[ \t]*\.` + regexp.QuoteMeta(token) + `[ \t]*\{[^{}]*\}[ \t]*\r?\n?`)
	// The leading group captures the character the class compounds onto,
	// the trailing group the character after the token. Both decide
	// whether stripping the token leaves a selector behind.
	selectorRe := regexp.MustCompile(`(^|[^\s,{>+~(])?\.` + regexp.QuoteMeta(token) + `($|[^-\w])`)

	return func(path, content string) (string, int, []string) {
		if isStylesheet(path) {
			count := 0
			unsafe := 0
			out := soleBlockRe.ReplaceAllStringFunc(content, func(string) string {
				count++
				return ""
			})
			out = selectorRe.ReplaceAllStringFunc(out, func(m string) string {
				sub := selectorRe.FindStringSubmatch(m)
				if stripLeavesSelector(sub[1], sub[2]) {
					count++
					return sub[1] + sub[2]
				}
				unsafe++
				return m
			})
			var diags []string
			if unsafe > 0 {
				diags = append(diags, fmt.Sprintf("%s: %d rule(s) using .%s as their only selector could not be removed automatically and were left for manual review", path, unsafe, token))
			}
			return out, count, diags
		}

		count := 0
		out := classAttrRe.ReplaceAllStringFunc(content, func(attr string) string {
			m := classAttrValueRe.FindStringSubmatch(attr)
			if m == nil {
				return attr
			}
			kept := make([]string, 0, 4)
			removed := 0
			for _, cls := range strings.Fields(m[3]) {
				if cls == token {
					removed++
					continue
				}
				kept = append(kept, cls)
			}
			if removed == 0 {
				return attr
			}
			count += removed
			if len(kept) == 0 {
				return ""
			}
			return m[1] + m[2] + strings.Join(kept, " ") + m[4]
		})

		var diags []string
		if left := len(tokenRe.FindAllStringIndex(out, -1)); left > 0 {
			diags = append(diags, fmt.Sprintf("%s: %d occurrence(s) of %q outside class attributes were left for manual review", path, left, token))
		}
		return out, count, diags
	}
}

// stripLeavesSelector reports whether removing the class token still
// leaves a simple selector at its position. A compounded token
// (.card.p-fluid, a.p-fluid) strips cleanly; a token standing alone
// would leave a headless block or a bare pseudo-class (:hover) behind.
func stripLeavesSelector(before, after string) bool {
	if before != "" {
		return true
	}
	switch after {
	case ".", "#", "[":
		return true
	}
	return false
}

func isStylesheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css", ".scss", ".sass":
		return true
	}
	return false
}
