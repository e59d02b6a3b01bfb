package rules

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	deferOpenRe    = regexp.MustCompile(`<p-defer(\s[^>]*)?>`)
	deferCloseRe   = regexp.MustCompile(`</p-defer\s*>`)
	deferSelfClose = regexp.MustCompile(`<p-defer(\s[^>]*)?/>\s*`)
)

// removeDeferElement deletes non-nested <p-defer> blocks together with
// their children. Tag balancing by regex is a best-effort heuristic: a
// nested <p-defer> inside a block cannot be matched safely, so the whole
// file is left untouched and a diagnostic asks for a manual migration to
// the framework's native deferred loading.
func removeDeferElement(path, content string) (string, int, []string) {
	count := 0
	out := deferSelfClose.ReplaceAllStringFunc(content, func(string) string {
		count++
		return ""
	})

	for {
		open := deferOpenRe.FindStringIndex(out)
		if open == nil {
			break
		}
		rest := out[open[1]:]
		close := deferCloseRe.FindStringIndex(rest)
		if close == nil {
			return content, 0, []string{fmt.Sprintf("%s: unclosed <p-defer> tag, file left unchanged", path)}
		}
		// Another opening tag before the close means nesting. Bail out on
		// the whole file rather than guess at the matching close tag.
		if next := deferOpenRe.FindStringIndex(rest[:close[0]]); next != nil {
			return content, 0, []string{fmt.Sprintf("%s: nested <p-defer> elements detected, file left unchanged; migrate these blocks by hand", path)}
		}
		out = out[:open[0]] + strings.TrimLeft(rest[close[1]:], " \t")
		count++
	}

	if count > 0 {
		return out, count, []string{fmt.Sprintf("%s: removed %d <p-defer> block(s); re-add deferred loading with the framework's @defer", path, count)}
	}
	return out, count, nil
}
