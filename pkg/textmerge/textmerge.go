// Package textmerge concatenates text files into a single document.
//
// A merge reads every input, decodes it (UTF-8 first, then the common
// single-byte fallbacks), and joins the contents with a configurable
// per-file separator. Unreadable inputs are skipped and reported in the
// result rather than failing the merge; only when no input at all could be
// read does Merge return an error.
//
// # Usage
//
//	result, err := textmerge.Merge(ctx, textmerge.Options{
//		Inputs:    []string{"a.txt", "b.txt"},
//		Output:    "merged.txt",
//		Separator: textmerge.SeparatorSimple,
//	})
//
// Leaving Output empty renders the merged document into Result.Content
// without writing a file.
package textmerge

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
)

// DefaultOutput is the output filename offered by interactive front-ends.
const DefaultOutput = "merged_files.txt"

// ============================================================================
// Separator Styles
// ============================================================================

// Separator selects the per-file header written before each input's content.
type Separator string

// Supported separator styles.
const (
	// SeparatorSimple writes "=== Content of <name> ===".
	SeparatorSimple Separator = "simple"
	// SeparatorFancy writes the file name in a boxed banner.
	SeparatorFancy Separator = "fancy"
	// SeparatorMinimal writes "--- <name> ---".
	SeparatorMinimal Separator = "minimal"
	// SeparatorNone joins contents with a blank line and no header.
	SeparatorNone Separator = "none"
)

// ValidSeparators contains all supported separator styles.
var ValidSeparators = map[Separator]bool{
	SeparatorSimple:  true,
	SeparatorFancy:   true,
	SeparatorMinimal: true,
	SeparatorNone:    true,
}

// ParseSeparator converts a string into a Separator, accepting any casing.
func ParseSeparator(s string) (Separator, error) {
	sep := Separator(strings.ToLower(strings.TrimSpace(s)))
	if !ValidSeparators[sep] {
		return "", errors.New(errors.ErrCodeInvalidConfig, "unknown separator style %q", s)
	}
	return sep, nil
}

// ============================================================================
// Options
// ============================================================================

// Options configures a text merge.
type Options struct {
	// Inputs are the text files to merge, in order.
	Inputs []string `json:"inputs"`

	// Output is the destination path. When empty the merged document is
	// only returned in Result.Content.
	Output string `json:"output,omitempty"`

	// Separator selects the per-file header style. Defaults to simple.
	Separator Separator `json:"separator,omitempty"`

	// LineNumbers prefixes each content line with its line number.
	LineNumbers bool `json:"line_numbers,omitempty"`

	// Timestamps writes each file's modification time under its header.
	Timestamps bool `json:"timestamps,omitempty"`

	// StripWhitespace trims trailing whitespace from every line and blank
	// lines from the edges of each file's content.
	StripWhitespace bool `json:"strip_whitespace,omitempty"`

	// Markdown renders the document as markdown with a heading per file
	// and fenced code blocks for non-markdown sources. The separator,
	// line-number, timestamp, and strip options apply to plain text
	// output only and are ignored in this mode.
	Markdown bool `json:"markdown,omitempty"`

	// Logger receives progress output. Defaults to a discarding logger.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Inputs) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no input files given")
	}
	for _, p := range o.Inputs {
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}

	if o.Output != "" {
		if err := errors.ValidateOutputPath(o.Output); err != nil {
			return err
		}
	}

	if o.Separator == "" {
		o.Separator = SeparatorSimple
	}
	if !ValidSeparators[o.Separator] {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown separator style %q", o.Separator)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ============================================================================
// Results
// ============================================================================

// FileStat reports the outcome and content statistics of one input file.
type FileStat struct {
	Path     string `json:"path"`
	Loaded   bool   `json:"loaded"`
	Reason   string `json:"reason,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Lines    int    `json:"lines,omitempty"`
	Words    int    `json:"words,omitempty"`
	Chars    int    `json:"chars,omitempty"`
}

// Stats aggregates content statistics across the merged files.
type Stats struct {
	Files int `json:"files"`
	Lines int `json:"lines"`
	Words int `json:"words"`
	Chars int `json:"chars"`
}

// Result describes a completed text merge.
type Result struct {
	// OutputPath is the written file, empty when no output was requested.
	OutputPath string `json:"output_path,omitempty"`

	// Files reports every input in order, including skipped ones.
	Files []FileStat `json:"files"`

	// Totals sums the statistics of the merged files.
	Totals Stats `json:"totals"`

	// Content is the merged document.
	Content string `json:"-"`
}

// Skipped returns how many inputs could not be read.
func (r *Result) Skipped() int {
	n := 0
	for _, f := range r.Files {
		if !f.Loaded {
			n++
		}
	}
	return n
}

// ============================================================================
// Merge
// ============================================================================

// Merge reads the input files and joins them into one document.
//
// Inputs that cannot be read or decoded are skipped and recorded in the
// result. Merge fails with EMPTY_INPUT when nothing could be read, and
// never writes a partial output file.
func Merge(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{Files: make([]FileStat, 0, len(opts.Inputs))}
	var files []sourceFile
	for _, path := range opts.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := loadFile(path)
		if err != nil {
			if !recoverable(err) {
				return nil, err
			}
			result.Files = append(result.Files, FileStat{Path: path, Reason: err.Error()})
			logger.Warn("skipping unreadable input", "path", path, "error", err)
			continue
		}

		stat := FileStat{
			Path:     path,
			Loaded:   true,
			Encoding: f.encoding,
			Lines:    countLines(f.content),
			Words:    len(strings.Fields(f.content)),
			Chars:    utf8.RuneCountInString(f.content),
		}
		result.Files = append(result.Files, stat)
		result.Totals.Files++
		result.Totals.Lines += stat.Lines
		result.Totals.Words += stat.Words
		result.Totals.Chars += stat.Chars
		files = append(files, f)
		logger.Debug("loaded input", "path", path, "encoding", f.encoding, "lines", stat.Lines)
	}

	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput,
			"none of the %d input files could be read", len(opts.Inputs))
	}

	if opts.Markdown {
		result.Content = renderMarkdown(files)
	} else {
		result.Content = renderText(files, opts)
	}

	if opts.Output != "" {
		if err := fileops.AtomicWrite(opts.Output, []byte(result.Content)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeEncode, err, "write %s", opts.Output)
		}
		result.OutputPath = opts.Output
		logger.Info("text merge complete",
			"output", opts.Output,
			"files", result.Totals.Files,
			"skipped", result.Skipped(),
			"lines", result.Totals.Lines)
	}

	return result, nil
}

// recoverable reports whether a per-file failure should skip the file
// instead of aborting the merge.
func recoverable(err error) bool {
	return errors.Is(err, errors.ErrCodeFileNotFound) || errors.Is(err, errors.ErrCodeDecode)
}
