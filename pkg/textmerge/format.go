package textmerge

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// modTimeLayout formats the per-file timestamp line.
const modTimeLayout = "2006-01-02 15:04:05"

// renderText joins the files into a plain text document. Each file becomes
// a block of header lines followed by its content; blocks are separated by
// a blank line.
func renderText(files []sourceFile, opts Options) string {
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		blocks = append(blocks, renderBlock(f, opts))
	}
	return strings.Join(blocks, "\n")
}

func renderBlock(f sourceFile, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf, f, opts)

	content := f.content
	if opts.StripWhitespace {
		content = stripWhitespace(content)
	}
	if opts.LineNumbers {
		content = numberLines(content)
	}

	buf.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.String()
}

// writeHeader emits the separator lines for one file, followed by a blank
// line when anything was written.
func writeHeader(buf *bytes.Buffer, f sourceFile, opts Options) {
	switch opts.Separator {
	case SeparatorSimple:
		fmt.Fprintf(buf, "=== Content of %s ===\n", f.name)
	case SeparatorFancy:
		title := "Content of " + f.name
		border := "+" + strings.Repeat("=", utf8.RuneCountInString(title)+2) + "+"
		fmt.Fprintf(buf, "%s\n| %s |\n%s\n", border, title, border)
	case SeparatorMinimal:
		fmt.Fprintf(buf, "--- %s ---\n", f.name)
	case SeparatorNone:
	}

	if opts.Timestamps {
		fmt.Fprintf(buf, "Modified: %s\n", f.modTime.Format(modTimeLayout))
	}

	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
}

// numberLines prefixes every line with a right-aligned line number.
func numberLines(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	var buf bytes.Buffer
	for i, line := range lines {
		fmt.Fprintf(&buf, "%4d | %s\n", i+1, line)
	}
	return buf.String()
}

// stripWhitespace trims trailing whitespace from every line and blank
// lines from both ends of the content.
func stripWhitespace(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ============================================================================
// Markdown
// ============================================================================

// fenceLangs maps source extensions to fenced code block languages.
// Unlisted extensions get a plain fence.
var fenceLangs = map[string]string{
	".json": "json",
	".xml":  "xml",
	".html": "html",
	".htm":  "html",
	".csv":  "csv",
	".yaml": "yaml",
	".yml":  "yaml",
}

// renderMarkdown joins the files into a markdown document with a heading
// per file. Markdown sources are included as-is; everything else is
// wrapped in a fenced code block.
func renderMarkdown(files []sourceFile) string {
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "## %s\n\n", f.name)

		content := f.content
		if strings.EqualFold(filepath.Ext(f.name), ".md") {
			buf.WriteString(content)
			if !strings.HasSuffix(content, "\n") {
				buf.WriteByte('\n')
			}
		} else {
			// A longer fence keeps content containing ``` intact.
			fence := "```"
			if strings.Contains(content, "```") {
				fence = "````"
			}
			fmt.Fprintf(&buf, "%s%s\n", fence, fenceLangs[strings.ToLower(filepath.Ext(f.name))])
			buf.WriteString(content)
			if !strings.HasSuffix(content, "\n") {
				buf.WriteByte('\n')
			}
			buf.WriteString(fence + "\n")
		}
		blocks = append(blocks, buf.String())
	}
	return strings.Join(blocks, "\n")
}
