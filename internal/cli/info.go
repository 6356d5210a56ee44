package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Show file details (size, category, image dimensions)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var firstErr error
			for i, path := range args {
				if i > 0 {
					printNewline()
				}
				fi, err := fileops.Info(path)
				if err != nil {
					printWarning("%s: %s", path, errors.UserMessage(err))
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				printFileInfo(fi)
			}
			return firstErr
		},
	}
}

// printFileInfo renders one file's metadata as key-value lines.
func printFileInfo(fi fileops.FileInfo) {
	printKeyValue("Name", fi.Name)
	printKeyValue("Category", string(fi.Category))
	printKeyValue("Size", humanSize(fi.Size))
	printKeyValue("Modified", fi.ModTime.Format("2006-01-02 15:04:05"))
	if fi.Width > 0 {
		printKeyValue("Dimensions", fmt.Sprintf("%d×%d", fi.Width, fi.Height))
	}
}

// humanSize formats a byte count with binary prefixes.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
