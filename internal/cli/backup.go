package cli

import (
	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
)

// backupCommand creates the backup command.
func (c *CLI) backupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>...",
		Short: "Create timestamped sibling copies of files",
		Long: `Copy each file to "<name>_backup_<timestamp><ext>" next to the original.
Files that cannot be backed up are reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var firstErr error
			created := 0
			for _, path := range args {
				backup, err := fileops.Backup(path)
				if err != nil {
					printWarning("%s: %s", path, errors.UserMessage(err))
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				printFile(backup)
				created++
			}
			if created > 0 {
				printSuccess("Created %d backups", created)
			}
			return firstErr
		},
	}
}
