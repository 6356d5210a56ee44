package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/fileops"
)

// collectCommand creates the collect command.
func (c *CLI) collectCommand() *cobra.Command {
	var (
		dest string
		move bool
	)

	cmd := &cobra.Command{
		Use:   "collect <file>...",
		Short: "Gather files into a timestamped folder",
		Long: `Copy files of one category into a fresh "collected_<category>_<timestamp>"
folder under the destination directory. With --move the originals are
relocated instead of copied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, collected, err := fileops.Collect(args, dest, move)
			if err != nil {
				return err
			}

			verb := "Copied"
			if move {
				verb = "Moved"
			}
			printSuccess("%s %d files", verb, len(collected))
			printFile(dir)
			printNewline()
			category := fileops.CategoryOf(collected[0])
			printNextStep("Merge the folder", fmt.Sprintf("filemerge merge dir %s --category %s", dir, category))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", ".", "destination root directory")
	cmd.Flags().BoolVar(&move, "move", false, "move files instead of copying")

	return cmd
}
