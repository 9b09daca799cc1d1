// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/varscope/varscope/lib/tui"
)

// Markdown rendering for curator notes in the detail pane. The
// renderer walks the goldmark AST directly instead of going through a
// renderer.Renderer: notes are short and the detail pane needs full
// control over wrapping and prefixes.
//
// The color profile is pinned to ANSI-256 so note rendering matches
// the rest of the UI regardless of what termenv detects for the
// output file descriptor.

var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func parserInstance() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParser
}

var markdownStyler = func() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	r.SetColorProfile(termenv.ANSI256)
	return r
}()

// renderTerminalMarkdown renders markdown source for a terminal pane
// of the given width. The result has no trailing newline.
func renderTerminalMarkdown(theme tui.Theme, source string, width int) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	src := []byte(source)
	doc := parserInstance().Parser().Parse(text.NewReader(src))

	r := &markdownRenderer{theme: theme, width: width, source: src}
	r.renderBlocks(doc)
	return strings.TrimRight(r.out.String(), "\n")
}

type markdownRenderer struct {
	theme  tui.Theme
	width  int
	source []byte

	out strings.Builder

	// prefixes stack up for nested blockquotes and list
	// continuation indents; every emitted line starts with their
	// concatenation.
	prefixes []string

	// pendingBullet replaces the innermost prefix on the next
	// emitted line: the list marker renders once, continuation lines
	// get matching indentation.
	pendingBullet string
}

func (r *markdownRenderer) renderBlocks(parent ast.Node) {
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		switch block := node.(type) {
		case *ast.Paragraph:
			r.writeWrapped(r.renderInline(block))
			r.blankLine()
		case *ast.TextBlock:
			// Tight list items wrap their content in a TextBlock
			// instead of a Paragraph; no trailing blank line.
			r.writeWrapped(r.renderInline(block))
		case *ast.Heading:
			r.writeHeading(block)
		case *ast.FencedCodeBlock:
			r.writeCodeBlock(blockText(block, r.source), string(block.Language(r.source)))
			r.blankLine()
		case *ast.CodeBlock:
			r.writeCodeBlock(blockText(block, r.source), "")
			r.blankLine()
		case *ast.Blockquote:
			quote := markdownStyler.NewStyle().Foreground(r.theme.FaintText).Render("│ ")
			r.prefixes = append(r.prefixes, quote)
			r.renderBlocks(block)
			r.prefixes = r.prefixes[:len(r.prefixes)-1]
		case *ast.List:
			r.writeList(block)
			r.blankLine()
		case *ast.ThematicBreak:
			rule := markdownStyler.NewStyle().Foreground(r.theme.FaintText).
				Render(strings.Repeat("─", min(r.width-r.prefixWidth(), 24)))
			r.writeLine(rule)
			r.blankLine()
		default:
			if node.Type() == ast.TypeBlock {
				r.writeWrapped(r.renderInline(node))
				r.blankLine()
			}
		}
	}
}

func (r *markdownRenderer) writeHeading(heading *ast.Heading) {
	marker := markdownStyler.NewStyle().Foreground(r.theme.FaintText).
		Render(strings.Repeat("#", heading.Level) + " ")
	title := markdownStyler.NewStyle().Bold(true).Foreground(r.theme.HeaderForeground).
		Render(r.inlineText(heading))
	r.writeLine(marker + title)
	r.blankLine()
}

func (r *markdownRenderer) writeList(list *ast.List) {
	ordinal := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		bullet := "• "
		if list.IsOrdered() {
			bullet = fmt.Sprintf("%d. ", ordinal)
			ordinal++
		}
		r.prefixes = append(r.prefixes, strings.Repeat(" ", len(bullet)))
		r.pendingBullet = bullet
		r.renderBlocks(item)
		r.pendingBullet = ""
		r.prefixes = r.prefixes[:len(r.prefixes)-1]
	}
}

func (r *markdownRenderer) writeCodeBlock(code, language string) {
	code = strings.TrimRight(code, "\n")
	rendered := ""
	if language != "" {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai"); err == nil {
			rendered = highlighted.String()
		}
	}
	if rendered == "" {
		rendered = markdownStyler.NewStyle().Foreground(r.theme.FaintText).Render(code)
	}

	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		r.writeLine("  " + line)
	}
}

// writeWrapped wraps styled inline content to the remaining width and
// emits it line by line under the current prefix stack.
func (r *markdownRenderer) writeWrapped(content string) {
	if strings.TrimSpace(ansi.Strip(content)) == "" {
		return
	}
	wrapWidth := r.width - r.prefixWidth()
	if wrapWidth < 16 {
		wrapWidth = 16
	}
	for _, line := range strings.Split(ansi.Wrap(content, wrapWidth, " ,.;-+|"), "\n") {
		r.writeLine(line)
	}
}

func (r *markdownRenderer) writeLine(line string) {
	lead := strings.Join(r.prefixes, "")
	if r.pendingBullet != "" {
		lead = strings.Join(r.prefixes[:len(r.prefixes)-1], "") + r.pendingBullet
		r.pendingBullet = ""
	}
	r.out.WriteString(lead + line + "\n")
}

func (r *markdownRenderer) blankLine() {
	r.out.WriteString(strings.Join(r.prefixes, "") + "\n")
}

func (r *markdownRenderer) prefixWidth() int {
	return lipgloss.Width(strings.Join(r.prefixes, ""))
}

// renderInline renders a block node's inline children as one styled
// string. Soft line breaks become spaces so paragraphs reflow to the
// pane width instead of keeping source line breaks.
func (r *markdownRenderer) renderInline(parent ast.Node) string {
	var out strings.Builder
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		switch inline := node.(type) {
		case *ast.Text:
			out.WriteString(string(inline.Segment.Value(r.source)))
			if inline.SoftLineBreak() || inline.HardLineBreak() {
				out.WriteString(" ")
			}
		case *ast.Emphasis:
			style := markdownStyler.NewStyle().Italic(true)
			if inline.Level >= 2 {
				style = markdownStyler.NewStyle().Bold(true)
			}
			out.WriteString(style.Render(r.inlineText(inline)))
		case *ast.CodeSpan:
			out.WriteString(markdownStyler.NewStyle().
				Foreground(r.theme.Accent).
				Render(r.inlineText(inline)))
		case *ast.Link:
			out.WriteString(r.renderInline(inline))
			out.WriteString(markdownStyler.NewStyle().
				Foreground(r.theme.FaintText).
				Render(" (" + string(inline.Destination) + ")"))
		case *ast.AutoLink:
			out.WriteString(markdownStyler.NewStyle().
				Foreground(r.theme.Accent).Underline(true).
				Render(string(inline.URL(r.source))))
		case *ast.Image:
			out.WriteString(markdownStyler.NewStyle().
				Foreground(r.theme.FaintText).
				Render("[image: " + r.inlineText(inline) + "]"))
		case *ast.String:
			out.WriteString(string(inline.Value))
		default:
			if node.Type() == ast.TypeInline {
				out.WriteString(r.renderInline(node))
			}
		}
	}
	return out.String()
}

// inlineText flattens a node's inline content to plain text, dropping
// nested styling. Used where a single style covers the whole run.
func (r *markdownRenderer) inlineText(parent ast.Node) string {
	var out strings.Builder
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		switch inline := node.(type) {
		case *ast.Text:
			out.WriteString(string(inline.Segment.Value(r.source)))
			if inline.SoftLineBreak() || inline.HardLineBreak() {
				out.WriteString(" ")
			}
		case *ast.String:
			out.WriteString(string(inline.Value))
		default:
			out.WriteString(r.inlineText(node))
		}
	}
	return out.String()
}

// blockText extracts the raw source lines of a code block.
func blockText(node ast.Node, source []byte) string {
	var out strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		out.Write(segment.Value(source))
	}
	return out.String()
}
