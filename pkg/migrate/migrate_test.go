package migrate_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/primeshift/primeshift/pkg/config"
	"github.com/primeshift/primeshift/pkg/migrate"
	"github.com/primeshift/primeshift/pkg/prompt"
	"github.com/primeshift/primeshift/pkg/report"
	"github.com/primeshift/primeshift/pkg/vcs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 createTestEnv creates a migration test environment
func createTestEnv(t *testing.T, files map[string]string) (context.Context, *config.Config, *bytes.Buffer) {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	root := t.TempDir()
	for path, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}

	cfg := config.Default()
	cfg.Root = root
	cfg.Approval = config.ApprovalYes
	cfg.Git.Enabled = false
	require.NoError(t, cfg.Validate())

	return ctx, cfg, &bytes.Buffer{}
}

func newOperator(t *testing.T, cfg *config.Config, out *bytes.Buffer, confirmer prompt.Confirmer, git *vcs.Git) *migrate.Operator {
	t.Helper()
	op, err := migrate.New(migrate.Options{
		Config:    cfg,
		Rules:     cfg.SelectRules(),
		Confirmer: confirmer,
		Printer:   report.NewPrinter(out, true),
		Git:       git,
	})
	require.NoError(t, err)
	return op
}

func readFile(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(cfg.Root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(content)
}

// 🧪 TestRunAppliesFullRuleTable exercises the whole pipeline end to end
func TestRunAppliesFullRuleTable(t *testing.T) {
	ctx, cfg, out := createTestEnv(t, map[string]string{
		"src/app/app.module.ts":      "import { CalendarModule } from 'primeng/calendar';\n@NgModule({ imports: [CalendarModule] })\nexport class AppModule {}\n",
		"src/app/list/list.html":     `<p-dropdown [style]="x"></p-dropdown>`,
		"src/app/form/form.html":     `<form class="p-fluid checkout"><p-calendar></p-calendar></form>`,
		"src/styles.scss":            ".p-fluid { width: 100%; }\n.p-sidebar-mask { z-index: 5; }\n",
	})

	op := newOperator(t, cfg, out, prompt.Auto(true), nil)
	summary, err := op.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t,
		"import { DatePickerModule } from 'primeng/datepicker';\n@NgModule({ imports: [DatePickerModule] })\nexport class AppModule {}\n",
		readFile(t, cfg, "src/app/app.module.ts"))
	assert.Equal(t, `<p-select [style]="x"></p-select>`, readFile(t, cfg, "src/app/list/list.html"))
	assert.Equal(t, `<form class="checkout"><p-datepicker></p-datepicker></form>`, readFile(t, cfg, "src/app/form/form.html"))
	assert.Equal(t, ".p-drawer-mask { z-index: 5; }\n", readFile(t, cfg, "src/styles.scss"))

	applied, declined, _, failed := summary.Counts()
	assert.Equal(t, 6, applied, "calendar import, calendar module, calendar selector, dropdown selector, sidebar css, fluid removal")
	assert.Zero(t, declined)
	assert.Zero(t, failed)
}

// 🧪 TestRunWithNoMatches reports zero changes and commits nothing
func TestRunWithNoMatches(t *testing.T) {
	ctx, cfg, out := createTestEnv(t, map[string]string{
		"src/app/app.module.ts": "import { TableModule } from 'primeng/table';\n",
	})

	git, runner := fakeGit(t, cfg.Root)
	cfg.Git.Enabled = true

	op := newOperator(t, cfg, out, prompt.Auto(true), git)
	summary, err := op.Run(ctx)
	require.NoError(t, err)

	applied, declined, noop, failed := summary.Counts()
	assert.Zero(t, applied)
	assert.Zero(t, declined)
	assert.Zero(t, failed)
	assert.Equal(t, len(cfg.SelectRules()), noop)
	assert.Zero(t, summary.FilesChanged())

	for _, call := range runner.calls {
		assert.NotEqual(t, "commit", call[0], "no commit may happen on a no-op run")
	}
}

// 🧪 TestRunDeclinedStep leaves files untouched
func TestRunDeclinedStep(t *testing.T) {
	content := `<p-dropdown></p-dropdown>`
	ctx, cfg, out := createTestEnv(t, map[string]string{
		"src/list.html": content,
	})

	op := newOperator(t, cfg, out, &prompt.Scripted{Answers: []bool{false}}, nil)
	summary, err := op.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, content, readFile(t, cfg, "src/list.html"))
	_, declined, _, failed := summary.Counts()
	assert.Equal(t, 1, declined)
	assert.Zero(t, failed)
}

// 🧪 TestRunDryRun writes nothing
func TestRunDryRun(t *testing.T) {
	content := `<p-calendar></p-calendar>`
	ctx, cfg, out := createTestEnv(t, map[string]string{
		"src/cal.html": content,
	})
	cfg.Approval = config.ApprovalDryRun

	op := newOperator(t, cfg, out, prompt.Auto(false), nil)
	summary, err := op.Run(ctx)
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Equal(t, content, readFile(t, cfg, "src/cal.html"))
	assert.Zero(t, summary.FilesChanged())
	assert.Contains(t, out.String(), "dry run")
}

// 🧪 TestRunCommitsEachStep verifies the commit wrapper
func TestRunCommitsEachStep(t *testing.T) {
	ctx, cfg, out := createTestEnv(t, map[string]string{
		"src/list.html": `<p-dropdown></p-dropdown>`,
	})
	cfg.Git.Enabled = true

	git, runner := fakeGit(t, cfg.Root)
	op := newOperator(t, cfg, out, prompt.Auto(true), git)
	summary, err := op.Run(ctx)
	require.NoError(t, err)

	applied, _, _, _ := summary.Counts()
	require.Equal(t, 1, applied)

	var added, committed []string
	for _, call := range runner.calls {
		switch call[0] {
		case "add":
			added = call
		case "commit":
			committed = call
		}
	}
	assert.Equal(t, []string{"add", "--", "src/list.html"}, added)
	require.NotNil(t, committed)
	assert.Equal(t, "chore(primeng): rename <p-dropdown> selector to <p-select>", committed[2])
}

func TestRunRefusesDirtyTree(t *testing.T) {
	ctx, cfg, out := createTestEnv(t, map[string]string{
		"src/list.html": `<p-dropdown></p-dropdown>`,
	})
	cfg.Git.Enabled = true

	git, runner := fakeGit(t, cfg.Root)
	runner.outputs["status --porcelain"] = " M src/list.html\n"

	op := newOperator(t, cfg, out, prompt.Auto(true), git)
	_, err := op.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uncommitted changes")
}

func TestRunStashesDirtyTreeWhenConfigured(t *testing.T) {
	ctx, cfg, out := createTestEnv(t, map[string]string{
		"src/list.html": `<p-dropdown></p-dropdown>`,
	})
	cfg.Git.Enabled = true
	cfg.Git.Stash = true

	git, runner := fakeGit(t, cfg.Root)
	runner.outputs["status --porcelain"] = "?? notes.txt\n"

	op := newOperator(t, cfg, out, prompt.Auto(true), git)
	_, err := op.Run(ctx)
	require.NoError(t, err)

	stashed := false
	for _, call := range runner.calls {
		if call[0] == "stash" {
			stashed = true
		}
	}
	assert.True(t, stashed)
}

// fakeRunner replays canned git output and records every invocation.
type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
}

func (r *fakeRunner) run(ctx context.Context, dir string, args ...string) (string, error) {
	r.calls = append(r.calls, args)
	key := args[0]
	if len(args) > 1 {
		key = args[0] + " " + args[1]
	}
	return r.outputs[key], nil
}

func fakeGit(t *testing.T, dir string) (*vcs.Git, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{outputs: map[string]string{
		"rev-parse --is-inside-work-tree": "true\n",
		"status --porcelain":              "",
	}}
	return vcs.NewWithRunner(dir, runner.run), runner
}
