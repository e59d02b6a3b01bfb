// Copyright 2025 the primeshift authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/primeshift/primeshift/pkg/engine"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🎨 Display configuration
const (
	fileIndent      = 2  // spaces to indent file entries
	maxPreviewFiles = 3  // files shown in the diff preview
	maxPreviewLines = 12 // changed lines shown per previewed file
)

// 🖨️ Printer writes human-readable run output to the console
type Printer struct {
	out     io.Writer
	noColor bool
}

// 🏭 NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer, noColor bool) *Printer {
	return &Printer{out: out, noColor: noColor}
}

func (p *Printer) sprintf(attr color.Attribute, format string, args ...any) string {
	if p.noColor {
		return fmt.Sprintf(format, args...)
	}
	return color.New(attr).Sprintf(format, args...)
}

// RuleHeader announces the step about to run.
func (p *Printer) RuleHeader(index, total int, name, description string) {
	fmt.Fprintf(p.out, "\n%s %s\n",
		p.sprintf(color.FgCyan, "[%d/%d] %s:", index, total, name),
		description)
}

// MatchList prints the files a rule would change, with match counts.
func (p *Printer) MatchList(cs *engine.ChangeSet) {
	fmt.Fprintf(p.out, "%s\n",
		p.sprintf(color.FgYellow, "%d match(es) in %d file(s)", cs.TotalMatches(), len(cs.Files)))
	indent := strings.Repeat(" ", fileIndent)
	for _, f := range cs.Files {
		fmt.Fprintf(p.out, "%s%s %s (%d)\n", indent, p.sprintf(color.FgBlue, "⟳"), f.Path, f.Count)
	}
	for _, s := range cs.Skipped {
		fmt.Fprintf(p.out, "%s%s %s: %v\n", indent, p.sprintf(color.FgRed, "✗"), s.Path, s.Err)
	}
}

// DiffPreview prints a compact line diff for the first few changed files.
func (p *Printer) DiffPreview(cs *engine.ChangeSet) {
	dmp := diffmatchpatch.New()
	for i, f := range cs.Files {
		if i >= maxPreviewFiles {
			fmt.Fprintf(p.out, "  … and %d more file(s)\n", len(cs.Files)-maxPreviewFiles)
			break
		}
		fmt.Fprintf(p.out, "  %s\n", p.sprintf(color.FgWhite, "--- %s", f.Path))
		a, b, lines := dmp.DiffLinesToChars(string(f.Before), string(f.After))
		diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
		p.printLineDiffs(diffs)
	}
}

func (p *Printer) printLineDiffs(diffs []diffmatchpatch.Diff) {
	printed := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		sign, attr := "+", color.FgGreen
		if d.Type == diffmatchpatch.DiffDelete {
			sign, attr = "-", color.FgRed
		}
		for _, line := range strings.Split(strings.TrimRight(d.Text, "\n"), "\n") {
			if printed >= maxPreviewLines {
				fmt.Fprintf(p.out, "    …\n")
				return
			}
			fmt.Fprintf(p.out, "    %s\n", p.sprintf(attr, "%s %s", sign, line))
			printed++
		}
	}
}

// StepResult prints the terminal state of a step.
func (p *Printer) StepResult(r StepResult) {
	switch r.Outcome {
	case OutcomeNoop:
		fmt.Fprintf(p.out, "%s\n", p.sprintf(color.FgYellow, "- no matches, skipping"))
	case OutcomeApplied:
		suffix := ""
		if r.Committed {
			suffix = ", committed"
		}
		fmt.Fprintf(p.out, "%s\n", p.sprintf(color.FgGreen, "✓ applied to %d file(s)%s", r.FilesChanged, suffix))
	case OutcomeDeclined:
		fmt.Fprintf(p.out, "%s\n", p.sprintf(color.FgYellow, "- declined, skipping"))
	case OutcomeFailed:
		fmt.Fprintf(p.out, "%s\n", p.sprintf(color.FgRed, "✗ failed: %v", r.Err))
	}
}

// FinalSummary prints the run totals and any diagnostics.
func (p *Printer) FinalSummary(s *Summary) {
	applied, declined, noop, failed := s.Counts()

	fmt.Fprintln(p.out)
	if s.DryRun {
		matched := 0
		for _, st := range s.Steps {
			if st.Matches > 0 {
				matched++
			}
		}
		fmt.Fprintf(p.out, "%s\n", p.sprintf(color.FgCyan, "dry run: %d rule(s) matched, no files were written", matched))
	}
	fmt.Fprintf(p.out, "%s\n", p.sprintf(color.FgCyan,
		"%d applied, %d declined, %d without matches, %d failed; %d file(s) changed",
		applied, declined, noop, failed, s.FilesChanged()))

	if len(s.Diagnostics) > 0 {
		fmt.Fprintf(p.out, "\n%s\n", p.sprintf(color.FgYellow, "manual follow-ups:"))
		for _, d := range s.Diagnostics {
			fmt.Fprintf(p.out, "  %s\n", d)
		}
	}
}
