package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/compose"
	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
	"github.com/filemerge/filemerge/pkg/history"
	"github.com/filemerge/filemerge/pkg/pipeline"
	"github.com/filemerge/filemerge/pkg/settings"
)

// mergeCommand creates the merge command group.
func (c *CLI) mergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge files of one category into a single output",
	}

	cmd.AddCommand(c.mergeImagesCommand())
	cmd.AddCommand(c.mergeTextCommand())
	cmd.AddCommand(c.mergeDirCommand())

	return cmd
}

// =============================================================================
// merge images
// =============================================================================

// imageFlags holds the command-line flags for image merges.
type imageFlags struct {
	output        string
	layout        string
	columns       int
	spacing       int
	resize        string
	width         int
	height        int
	filter        string
	watermark     string
	watermarkFont string
	background    string
	workers       int
	noCache       bool
	refresh       bool
}

// mergeImagesCommand creates the "merge images" subcommand.
func (c *CLI) mergeImagesCommand() *cobra.Command {
	var f imageFlags

	cmd := &cobra.Command{
		Use:   "images <file>...",
		Short: "Composite image files onto one canvas",
		Long: `Composite image files onto one canvas.

Images are placed in input order using the chosen layout. Undecodable
inputs are skipped with a warning; the merge only fails when no input
can be read. The output format follows the output file extension
(png, jpg, gif, bmp, tiff).

Examples:
  filemerge merge images a.png b.png -o strip.png --layout horizontal
  filemerge merge images *.jpg -o contact.png --layout grid --columns 4
  filemerge merge images a.png b.png -o out.png --resize fit --width 400 --height 400`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.loadSettings()
			f.applySettings(cmd, cfg)
			return c.runMergeImages(cmd.Context(), args, &f, cfg)
		},
	}

	f.register(cmd)

	return cmd
}

// register binds the image merge flags to cmd.
func (f *imageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", pipeline.DefaultOutput, "output image path")
	cmd.Flags().StringVarP(&f.layout, "layout", "l", string(pipeline.DefaultLayout), "arrangement: vertical, horizontal, grid")
	cmd.Flags().IntVar(&f.columns, "columns", 0, "grid columns (0 picks a near-square grid)")
	cmd.Flags().IntVar(&f.spacing, "spacing", pipeline.DefaultSpacing, "gap between images in pixels")
	cmd.Flags().StringVar(&f.resize, "resize", "", "per-image resize mode: none, fit, fill, stretch")
	cmd.Flags().IntVar(&f.width, "width", 0, "resize target width")
	cmd.Flags().IntVar(&f.height, "height", 0, "resize target height")
	cmd.Flags().StringVar(&f.filter, "filter", "", "per-image filter: none, grayscale, sepia, blur, sharpen")
	cmd.Flags().StringVar(&f.watermark, "watermark", "", "watermark text drawn in the bottom-right corner")
	cmd.Flags().StringVar(&f.watermarkFont, "watermark-font", "", "system font name for the watermark")
	cmd.Flags().StringVar(&f.background, "background", "", `canvas color as "#rrggbb" (default white)`)
	cmd.Flags().IntVar(&f.workers, "workers", 0, "parallel workers (0 means one per CPU)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// applySettings fills in defaults from the settings file for every flag the
// user did not set on the command line.
func (f *imageFlags) applySettings(cmd *cobra.Command, cfg settings.Settings) {
	fl := cmd.Flags()
	if !fl.Changed("layout") && cfg.Image.Layout != "" {
		f.layout = cfg.Image.Layout
	}
	if !fl.Changed("spacing") {
		f.spacing = cfg.Image.Spacing
	}
	if !fl.Changed("resize") {
		f.resize = cfg.Image.ResizeMode
	}
	if !fl.Changed("filter") {
		f.filter = cfg.Image.Filter
	}
	if !fl.Changed("watermark") && cfg.Image.AddWatermark {
		f.watermark = cfg.Image.WatermarkText
	}
	if !fl.Changed("watermark-font") {
		f.watermarkFont = cfg.Image.WatermarkFont
	}
	if !fl.Changed("workers") {
		f.workers = cfg.General.Workers
	}
}

// imageFlagsFromSettings builds image flags entirely from saved settings,
// for commands that expose no per-run image flags of their own.
func imageFlagsFromSettings(cfg settings.Settings, output string, noCache bool) *imageFlags {
	f := &imageFlags{
		output:        output,
		layout:        cfg.Image.Layout,
		spacing:       cfg.Image.Spacing,
		resize:        cfg.Image.ResizeMode,
		filter:        cfg.Image.Filter,
		watermarkFont: cfg.Image.WatermarkFont,
		workers:       cfg.General.Workers,
		noCache:       noCache,
	}
	if cfg.Image.AddWatermark {
		f.watermark = cfg.Image.WatermarkText
	}
	return f
}

// options converts the parsed flags into pipeline options.
func (f *imageFlags) options(inputs []string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Inputs:        inputs,
		Output:        f.output,
		Columns:       f.columns,
		Spacing:       f.spacing,
		Width:         f.width,
		Height:        f.height,
		Watermark:     f.watermark,
		WatermarkFont: f.watermarkFont,
		Background:    f.background,
		Workers:       f.workers,
		Refresh:       f.refresh,
	}

	if f.layout != "" {
		layout, err := compose.ParseLayout(f.layout)
		if err != nil {
			return opts, err
		}
		opts.Layout = layout
	}
	if f.resize != "" {
		mode, err := compose.ParseResizeMode(f.resize)
		if err != nil {
			return opts, err
		}
		opts.Resize = mode
	}
	if f.filter != "" {
		filter, err := compose.ParseFilter(f.filter)
		if err != nil {
			return opts, err
		}
		opts.Filter = filter
	}

	return opts, nil
}

// runMergeImages executes an image merge and prints the outcome.
func (c *CLI) runMergeImages(ctx context.Context, inputs []string, f *imageFlags, cfg settings.Settings) error {
	if err := requireCategory(inputs, fileops.CategoryImage); err != nil {
		return err
	}

	opts, err := f.options(inputs)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, cfg.General, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Merging %d images...", len(inputs)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Merge failed")
		return err
	}
	spinner.Stop()

	c.recordHistory(ctx, history.Entry{
		Category: string(fileops.CategoryImage),
		Inputs:   len(inputs),
		Skipped:  result.Stats.SkippedCount,
		Output:   result.OutputPath,
		Width:    result.Width,
		Height:   result.Height,
		Duration: prog.elapsed(),
	})

	for _, skip := range result.Skipped() {
		printWarning("Skipped %s: %s", skip.Path, skip.Reason)
	}
	printSuccess("Merged %d images onto a %d×%d canvas", result.Stats.LoadedCount, result.Width, result.Height)
	printFile(result.OutputPath)
	printStats(result.Stats.LoadedCount, result.Stats.SkippedCount, result.CacheInfo.ArtifactHit)

	return nil
}

// =============================================================================
// Shared Helpers
// =============================================================================

// requireCategory checks that every input belongs to the expected category.
func requireCategory(inputs []string, want fileops.Category) error {
	got, err := fileops.DetectCategory(inputs)
	if err != nil {
		return err
	}
	if got != want {
		return errors.New(errors.ErrCodeMixedCategory, "expected %s files, got %s files", want, got)
	}
	return nil
}

// recordHistory appends a history entry. History is best effort: a failure
// is logged, never surfaced, so it cannot break a finished merge.
func (c *CLI) recordHistory(ctx context.Context, e history.Entry) {
	store, err := history.NewFileStore("", history.DefaultLimit)
	if err != nil {
		c.Logger.Debug("History disabled", "err", err)
		return
	}
	if err := store.Append(ctx, e); err != nil {
		c.Logger.Debug("Could not record history", "err", err)
	}
}
