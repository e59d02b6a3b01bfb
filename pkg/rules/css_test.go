package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluidRemovalInMarkup(t *testing.T) {
	rule := mustLookup(t, "fluid-class")

	tests := []struct {
		name    string
		content string
		want    string
		count   int
	}{
		{
			name:    "token_in_multi_class_attribute",
			content: `<div class="p-fluid grid form"></div>`,
			want:    `<div class="grid form"></div>`,
			count:   1,
		},
		{
			name:    "token_in_middle_collapses_whitespace",
			content: `<div class="grid p-fluid form"></div>`,
			want:    `<div class="grid form"></div>`,
			count:   1,
		},
		{
			name:    "sole_token_drops_attribute",
			content: `<div class="p-fluid"><input pInputText /></div>`,
			want:    `<div><input pInputText /></div>`,
			count:   1,
		},
		{
			name:    "style_class_attribute",
			content: `<p-select styleClass="p-fluid w-full"></p-select>`,
			want:    `<p-select styleClass="w-full"></p-select>`,
			count:   1,
		},
		{
			name:    "similar_class_untouched",
			content: `<div class="p-fluid-like"></div>`,
			want:    `<div class="p-fluid-like"></div>`,
			count:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, count, _ := rule.Apply("form.component.html", tt.content)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestFluidRemovalInStylesheet(t *testing.T) {
	rule := mustLookup(t, "fluid-class")

	t.Run("sole_selector_block_deleted", func(t *testing.T) {
		out, count, diags := rule.Apply("form.component.css", ".p-fluid { width: 100%; }\n.card { padding: 1rem; }\n")
		require.Empty(t, diags)
		assert.Equal(t, 1, count)
		assert.Equal(t, ".card { padding: 1rem; }\n", out)
	})

	t.Run("compound_selector_keeps_block", func(t *testing.T) {
		out, count, _ := rule.Apply("form.component.scss", ".card.p-fluid { width: 100%; }\n")
		assert.Equal(t, 1, count)
		assert.Equal(t, ".card { width: 100%; }\n", out)
	})

	t.Run("nested_block_left_for_manual_review", func(t *testing.T) {
		content := ".p-fluid {\n  .inner { width: 100%; }\n}\n"
		out, count, diags := rule.Apply("form.component.scss", content)
		assert.Equal(t, content, out, "stripping the selector would orphan the nested block")
		assert.Zero(t, count)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0], ".p-fluid")
		assert.Contains(t, diags[0], "manual review")
	})

	t.Run("pseudo_class_left_for_manual_review", func(t *testing.T) {
		content := ".p-fluid:hover { color: red; }\n"
		out, count, diags := rule.Apply("form.component.css", content)
		assert.Equal(t, content, out)
		assert.Zero(t, count)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0], "manual review")
	})

	t.Run("compound_with_pseudo_strips_cleanly", func(t *testing.T) {
		out, count, diags := rule.Apply("form.component.css", ".card.p-fluid:hover { color: red; }\n")
		require.Empty(t, diags)
		assert.Equal(t, 1, count)
		assert.Equal(t, ".card:hover { color: red; }\n", out)
	})

	t.Run("selector_list_left_for_manual_review", func(t *testing.T) {
		content := "a, .p-fluid { margin: 0; }\n"
		out, count, diags := rule.Apply("form.component.css", content)
		assert.Equal(t, content, out, "removing the token would leave a dangling comma")
		assert.Zero(t, count)
		require.Len(t, diags, 1)
	})
}

func TestFluidRemovalReportsUntouchedOccurrences(t *testing.T) {
	rule := mustLookup(t, "fluid-class")

	content := `<div [ngClass]="{'p-fluid': isFluid}"></div>`
	out, count, diags := rule.Apply("form.component.html", content)
	assert.Equal(t, content, out)
	assert.Zero(t, count)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "p-fluid")
	assert.Contains(t, diags[0], "manual review")
}

func TestLinkRemoval(t *testing.T) {
	rule := mustLookup(t, "link-class")

	out, count, _ := rule.Apply("nav.component.html", `<button class="p-link" (click)="go()">Go</button>`)
	assert.Equal(t, `<button (click)="go()">Go</button>`, out)
	assert.Equal(t, 1, count)
}
