// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/varscope/varscope/lib/tui"
)

func renderPlain(t *testing.T, source string, width int) string {
	t.Helper()
	return ansi.Strip(renderTerminalMarkdown(tui.DefaultTheme(), source, width))
}

func TestMarkdownEmptySource(t *testing.T) {
	if got := renderTerminalMarkdown(tui.DefaultTheme(), "   \n  ", 60); got != "" {
		t.Errorf("blank source rendered %q, want empty", got)
	}
}

func TestMarkdownParagraphReflow(t *testing.T) {
	source := "This note spans\nseveral source lines\nthat should reflow."
	got := renderPlain(t, source, 80)

	if strings.Count(got, "\n") != 0 {
		t.Errorf("short paragraph should reflow to one line, got %q", got)
	}
	if !strings.Contains(got, "spans several source lines") {
		t.Errorf("soft breaks should become spaces, got %q", got)
	}
}

func TestMarkdownWrapsToWidth(t *testing.T) {
	source := strings.Repeat("binding interface residue ", 8)
	got := renderPlain(t, source, 40)

	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 40 {
			t.Errorf("line exceeds width 40: %q", line)
		}
	}
}

func TestMarkdownBulletList(t *testing.T) {
	source := "- affects DNA contact\n- conserved across species"
	got := renderPlain(t, source, 60)

	if !strings.Contains(got, "• affects DNA contact") {
		t.Errorf("missing first bullet, got %q", got)
	}
	if !strings.Contains(got, "• conserved across species") {
		t.Errorf("missing second bullet, got %q", got)
	}
}

func TestMarkdownOrderedListNumbers(t *testing.T) {
	source := "1. first observation\n2. second observation"
	got := renderPlain(t, source, 60)

	if !strings.Contains(got, "1. first observation") || !strings.Contains(got, "2. second observation") {
		t.Errorf("ordered list lost its numbering, got %q", got)
	}
}

func TestMarkdownBlockquotePrefix(t *testing.T) {
	source := "> reported in two unrelated probands"
	got := renderPlain(t, source, 60)

	if !strings.Contains(got, "│ reported in two unrelated probands") {
		t.Errorf("blockquote missing prefix, got %q", got)
	}
}

func TestMarkdownHeadingAndCodeSpan(t *testing.T) {
	source := "## Evidence\n\nThe `R177` contact is lost."
	got := renderPlain(t, source, 60)

	if !strings.Contains(got, "## Evidence") {
		t.Errorf("heading missing, got %q", got)
	}
	if !strings.Contains(got, "R177") {
		t.Errorf("code span content missing, got %q", got)
	}
}

func TestMarkdownFencedCodeIndented(t *testing.T) {
	source := "```\nSELECT 1\n```"
	got := renderPlain(t, source, 60)

	if !strings.Contains(got, "  SELECT 1") {
		t.Errorf("code block should render indented, got %q", got)
	}
}

func TestMarkdownLinkShowsDestination(t *testing.T) {
	source := "See [ClinVar](https://example.org/clinvar)."
	got := renderPlain(t, source, 80)

	if !strings.Contains(got, "ClinVar") || !strings.Contains(got, "https://example.org/clinvar") {
		t.Errorf("link text or destination missing, got %q", got)
	}
}
