package index

import (
	"bufio"
	"strings"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
)

// CleanMarkdown converts a Markdown or MDX post body into plain text
// Headings, paragraphs, list items, link text and inline code survive;
// fenced code, images, raw HTML and MDX import/export lines are dropped
func CleanMarkdown(md string) string {
	doc := markdown.Parse([]byte(stripMDXStatements(md)), nil)

	var b strings.Builder
	ast.Walk(doc, &textExtractor{b: &b})

	return normalizeLines(b.String())
}

// Excerpt returns the first top-level paragraph of md as plain text, cut to maxRunes
func Excerpt(md string, maxRunes int) string {
	doc := markdown.Parse([]byte(stripMDXStatements(md)), nil)

	var para ast.Node
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.List, *ast.BlockQuote, *ast.Table:
			return ast.SkipChildren
		case *ast.Paragraph:
			para = n
			return ast.Terminate
		}
		return ast.GoToNext
	})
	if para == nil {
		return ""
	}

	var b strings.Builder
	ast.Walk(para, &textExtractor{b: &b})

	return Truncate(strings.Join(strings.Fields(b.String()), " "), maxRunes)
}

// Truncate shortens s to at most maxRunes runes plus an ellipsis, preferring a word boundary
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

// stripMDXStatements drops top-level MDX import and export lines
func stripMDXStatements(md string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(md))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// normalizeLines collapses runs of whitespace and drops blank lines
func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// textExtractor is an AST visitor that writes the readable text of a document
type textExtractor struct {
	b *strings.Builder
}

// Visit implements ast.NodeVisitor
func (te *textExtractor) Visit(node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.Heading:
		te.b.WriteString("\n")

	case *ast.Paragraph:
		if !entering {
			te.b.WriteString("\n")
		}

	case *ast.ListItem:
		if entering {
			te.b.WriteString("\n- ")
		}

	case *ast.List:
		if !entering {
			te.b.WriteString("\n")
		}

	case *ast.Text:
		te.b.Write(n.Literal)

	case *ast.Code:
		te.b.Write(n.Literal)

	case *ast.Softbreak, *ast.Hardbreak:
		te.b.WriteString(" ")

	case *ast.Image:
		// Alt text is presentation, not content
		if entering {
			return ast.SkipChildren
		}

	case *ast.CodeBlock, *ast.HTMLBlock, *ast.HTMLSpan:
		// Literal content is never copied
	}

	return ast.GoToNext
}
