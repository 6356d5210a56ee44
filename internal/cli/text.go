package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/fileops"
	"github.com/filemerge/filemerge/pkg/history"
	"github.com/filemerge/filemerge/pkg/settings"
	"github.com/filemerge/filemerge/pkg/textmerge"
)

// textFlags holds the command-line flags for text merges.
type textFlags struct {
	output          string
	separator       string
	lineNumbers     bool
	timestamps      bool
	stripWhitespace bool
	markdown        bool
}

// mergeTextCommand creates the "merge text" subcommand.
func (c *CLI) mergeTextCommand() *cobra.Command {
	var f textFlags

	cmd := &cobra.Command{
		Use:   "text <file>...",
		Short: "Concatenate text files into one document",
		Long: `Concatenate text files into one document.

Each file's content is written under a separator header. Files that are
not valid UTF-8 are decoded with the common single-byte fallbacks;
unreadable files are skipped with a warning.

Examples:
  filemerge merge text a.txt b.txt -o combined.txt
  filemerge merge text notes/*.md -o book.md --markdown
  filemerge merge text *.log -o all.log --separator minimal --timestamps`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.loadSettings()
			f.applySettings(cmd, cfg)
			return c.runMergeText(cmd.Context(), args, &f)
		},
	}

	f.register(cmd)

	return cmd
}

// register binds the text merge flags to cmd.
func (f *textFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", textmerge.DefaultOutput, "output file path")
	cmd.Flags().StringVarP(&f.separator, "separator", "s", string(textmerge.SeparatorSimple), "separator style: simple, fancy, minimal, none")
	cmd.Flags().BoolVar(&f.lineNumbers, "line-numbers", false, "prefix content lines with line numbers")
	cmd.Flags().BoolVar(&f.timestamps, "timestamps", false, "write each file's modification time under its header")
	cmd.Flags().BoolVar(&f.stripWhitespace, "strip-whitespace", false, "trim trailing whitespace and blank edges per file")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "render markdown with a heading and code fence per file")
}

// applySettings fills in defaults from the settings file for every flag the
// user did not set on the command line.
func (f *textFlags) applySettings(cmd *cobra.Command, cfg settings.Settings) {
	fl := cmd.Flags()
	if !fl.Changed("separator") && cfg.Text.Separator != "" {
		f.separator = cfg.Text.Separator
	}
	if !fl.Changed("line-numbers") {
		f.lineNumbers = cfg.Text.LineNumbers
	}
	if !fl.Changed("timestamps") {
		f.timestamps = cfg.Text.Timestamps
	}
	if !fl.Changed("strip-whitespace") {
		f.stripWhitespace = cfg.Text.StripWhitespace
	}
}

// textFlagsFromSettings builds text flags entirely from saved settings,
// for commands that expose no per-run text flags of their own.
func textFlagsFromSettings(cfg settings.Settings, output string) *textFlags {
	f := &textFlags{
		output:          output,
		separator:       cfg.Text.Separator,
		lineNumbers:     cfg.Text.LineNumbers,
		timestamps:      cfg.Text.Timestamps,
		stripWhitespace: cfg.Text.StripWhitespace,
	}
	if f.separator == "" {
		f.separator = string(textmerge.SeparatorSimple)
	}
	return f
}

// runMergeText executes a text merge and prints the outcome.
func (c *CLI) runMergeText(ctx context.Context, inputs []string, f *textFlags) error {
	if err := requireCategory(inputs, fileops.CategoryText); err != nil {
		return err
	}

	separator, err := textmerge.ParseSeparator(f.separator)
	if err != nil {
		return err
	}

	opts := textmerge.Options{
		Inputs:          inputs,
		Output:          f.output,
		Separator:       separator,
		LineNumbers:     f.lineNumbers,
		Timestamps:      f.timestamps,
		StripWhitespace: f.stripWhitespace,
		Markdown:        f.markdown,
		Logger:          c.Logger,
	}

	prog := newProgress(c.Logger)
	result, err := textmerge.Merge(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Merged %d text files", result.Totals.Files))

	c.recordHistory(ctx, history.Entry{
		Category: string(fileops.CategoryText),
		Inputs:   len(inputs),
		Skipped:  result.Skipped(),
		Output:   result.OutputPath,
		Duration: prog.elapsed(),
	})

	for _, file := range result.Files {
		if !file.Loaded {
			printWarning("Skipped %s: %s", file.Path, file.Reason)
		}
	}
	printSuccess("Merged %d text files (%d lines, %d words)",
		result.Totals.Files, result.Totals.Lines, result.Totals.Words)
	printFile(result.OutputPath)
	printStats(result.Totals.Files, result.Skipped(), false)

	return nil
}
