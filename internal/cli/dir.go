package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
	"github.com/filemerge/filemerge/pkg/pipeline"
	"github.com/filemerge/filemerge/pkg/textmerge"
)

// mergeDirCommand creates the "merge dir" subcommand.
func (c *CLI) mergeDirCommand() *cobra.Command {
	var (
		output   string
		category string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "dir <directory>",
		Short: "Merge every mergeable file in a directory",
		Long: `Merge every mergeable file directly inside a directory (no recursion).

The category is taken from --category or, when omitted, inferred from the
output file extension. Merge options come from the settings file (see
"filemerge settings"); use "merge images" or "merge text" directly for
per-run control.

Examples:
  filemerge merge dir ./shots -o contact.png
  filemerge merge dir ./logs --category text -o all.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMergeDir(cmd.Context(), args[0], output, category, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default merged_images.png or merged_files.txt)")
	cmd.Flags().StringVar(&category, "category", "", "file category to merge: image, text")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runMergeDir scans the directory and hands the files to the regular merge.
func (c *CLI) runMergeDir(ctx context.Context, dir, output, category string, noCache bool) error {
	logger := loggerFromContext(ctx)

	cat, output, err := resolveDirTarget(output, category)
	if err != nil {
		return err
	}

	inputs, err := fileops.ScanDir(dir, cat)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no %s files in %s", cat, dir)
	}
	logger.Debug("Scanned directory", "dir", dir, "category", cat, "files", len(inputs))

	cfg := c.loadSettings()
	if cat == fileops.CategoryImage {
		return c.runMergeImages(ctx, inputs, imageFlagsFromSettings(cfg, output, noCache), cfg)
	}
	return c.runMergeText(ctx, inputs, textFlagsFromSettings(cfg, output))
}

// resolveDirTarget works out the merge category and output path. An explicit
// --category wins; otherwise the category follows the output extension.
func resolveDirTarget(output, category string) (fileops.Category, string, error) {
	if category != "" {
		cat, err := fileops.ParseCategory(category)
		if err != nil {
			return "", "", err
		}
		if output == "" {
			if cat == fileops.CategoryImage {
				output = pipeline.DefaultOutput
			} else {
				output = textmerge.DefaultOutput
			}
		}
		return cat, output, nil
	}

	if output == "" {
		return "", "", errors.New(errors.ErrCodeInvalidConfig,
			"pass --category or an --output whose extension determines it")
	}
	cat := fileops.CategoryOf(output)
	if cat == fileops.CategoryOther {
		return "", "", errors.New(errors.ErrCodeInvalidConfig,
			"%s is neither an image nor a text output, pass --category", output)
	}
	return cat, output, nil
}
