package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/history"
)

// historyCommand creates the history command group.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review past merges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistoryList(cmd.Context())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show recorded merges, most recent first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runHistoryList(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget all recorded merges",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := history.NewFileStore("", history.DefaultLimit)
				if err != nil {
					return err
				}
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				printSuccess("History cleared")
				return nil
			},
		},
	)

	return cmd
}

// runHistoryList prints the recorded merges.
func (c *CLI) runHistoryList(ctx context.Context) error {
	store, err := history.NewFileStore("", history.DefaultLimit)
	if err != nil {
		return err
	}
	entries, err := store.List(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		printInfo("History is empty")
		return nil
	}
	for _, e := range entries {
		printHistoryEntry(e)
	}
	return nil
}

// printHistoryEntry renders one merge as a single line.
func printHistoryEntry(e history.Entry) {
	files := fmt.Sprintf("%d files", e.Inputs)
	if e.Skipped > 0 {
		files += StyleDim.Render(fmt.Sprintf(" (%d skipped)", e.Skipped))
	}

	tail := e.Duration.Round(time.Millisecond).String()
	if e.Width > 0 {
		tail = fmt.Sprintf("%d×%d · %s", e.Width, e.Height, tail)
	}

	fmt.Println("  " +
		StyleDim.Render(e.Timestamp.Format("2006-01-02 15:04")) + "  " +
		StyleHighlight.Render(fmt.Sprintf("%-5s", e.Category)) + "  " +
		files + " " +
		StyleDim.Render(iconArrow) + " " +
		StyleValue.Render(e.Output) + "  " +
		StyleDim.Render(tail))
}
