package report_test

import (
	"bytes"
	"testing"

	"github.com/primeshift/primeshift/pkg/engine"
	"github.com/primeshift/primeshift/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestRuleOutcomeString(t *testing.T) {
	assert.Equal(t, "pending", report.OutcomePending.String())
	assert.Equal(t, "no matches", report.OutcomeNoop.String())
	assert.Equal(t, "applied", report.OutcomeApplied.String())
	assert.Equal(t, "declined", report.OutcomeDeclined.String())
	assert.Equal(t, "failed", report.OutcomeFailed.String())
}

func TestSummaryCounts(t *testing.T) {
	s := &report.Summary{}
	s.Record(report.StepResult{Rule: "a", Outcome: report.OutcomeApplied, FilesChanged: 3})
	s.Record(report.StepResult{Rule: "b", Outcome: report.OutcomeDeclined})
	s.Record(report.StepResult{Rule: "c", Outcome: report.OutcomeNoop})
	s.Record(report.StepResult{Rule: "d", Outcome: report.OutcomeApplied, FilesChanged: 1, Diagnostics: []string{"check d"}})

	applied, declined, noop, failed := s.Counts()
	assert.Equal(t, 2, applied)
	assert.Equal(t, 1, declined)
	assert.Equal(t, 1, noop)
	assert.Zero(t, failed)
	assert.Equal(t, 4, s.FilesChanged())
	assert.Equal(t, []string{"check d"}, s.Diagnostics)
}

func TestMatchListOutput(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewPrinter(&buf, true)

	p.MatchList(&engine.ChangeSet{
		Files: []engine.FileChange{
			{Path: "src/app.module.ts", Count: 2},
			{Path: "src/list.html", Count: 1},
		},
		Skipped: []engine.SkippedFile{
			{Path: "src/broken.ts", Err: errors.New("permission denied")},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "3 match(es) in 2 file(s)")
	assert.Contains(t, out, "src/app.module.ts (2)")
	assert.Contains(t, out, "src/broken.ts: permission denied")
}

func TestDiffPreviewShowsChangedLines(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewPrinter(&buf, true)

	p.DiffPreview(&engine.ChangeSet{
		Files: []engine.FileChange{{
			Path:   "src/list.html",
			Before: []byte("<p-dropdown></p-dropdown>\n<footer></footer>\n"),
			After:  []byte("<p-select></p-select>\n<footer></footer>\n"),
			Count:  2,
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "--- src/list.html")
	assert.Contains(t, out, "- <p-dropdown></p-dropdown>")
	assert.Contains(t, out, "+ <p-select></p-select>")
	assert.NotContains(t, out, "footer", "unchanged lines stay out of the preview")
}

func TestFinalSummaryOutput(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewPrinter(&buf, true)

	s := &report.Summary{}
	s.Record(report.StepResult{Rule: "a", Outcome: report.OutcomeApplied, FilesChanged: 2})
	s.Record(report.StepResult{Rule: "b", Outcome: report.OutcomeNoop})
	s.Diagnostics = append(s.Diagnostics, "src/page.html: nested <p-defer> elements detected")

	p.FinalSummary(s)

	out := buf.String()
	assert.Contains(t, out, "1 applied, 0 declined, 1 without matches, 0 failed; 2 file(s) changed")
	assert.Contains(t, out, "manual follow-ups:")
	assert.Contains(t, out, "nested <p-defer>")
}

func TestStepResultOutput(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewPrinter(&buf, true)

	p.StepResult(report.StepResult{Outcome: report.OutcomeApplied, FilesChanged: 4, Committed: true})
	require.Contains(t, buf.String(), "applied to 4 file(s), committed")

	buf.Reset()
	p.StepResult(report.StepResult{Outcome: report.OutcomeFailed, Err: errors.New("boom")})
	require.Contains(t, buf.String(), "failed: boom")
}
