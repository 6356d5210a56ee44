package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:   "filemerge",
		Short: "Filemerge combines images or text files into one output",
		Long: `Filemerge merges a set of files of one category into a single output:
images are composited onto a canvas (vertical, horizontal, or grid layout,
with optional resizing, filters, and a watermark), text files are
concatenated with configurable separators.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case verbose:
				c.SetLogLevel(LogDebug)
			case quiet:
				c.SetLogLevel(LogError)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation on a terminal opens the menu.
			if stdoutIsTerminal() {
				return c.runMenu(cmd.Context())
			}
			return cmd.Help()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Register all subcommands
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.collectCommand())
	root.AddCommand(c.backupCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.menuCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
