package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/pkg/settings"
)

// settingsCommand creates the settings command group.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change persisted merge defaults",
		Long: `Merge defaults live in a TOML file under the user config directory.
Values set here apply to every merge unless overridden by a flag.`,
	}

	cmd.AddCommand(
		c.settingsListCommand(),
		c.settingsGetCommand(),
		c.settingsSetCommand(),
		c.settingsPathCommand(),
		c.settingsResetCommand(),
	)

	return cmd
}

// settingsListCommand creates the settings list command.
func (c *CLI) settingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := settings.NewManager("")
			if err != nil {
				return err
			}
			cfg, err := m.Load()
			if err != nil {
				return err
			}

			for _, key := range settings.Keys() {
				value, err := settings.Get(&cfg, key)
				if err != nil {
					return err
				}
				printSetting(key, value)
			}
			printNewline()
			printDetail(m.Path())
			return nil
		},
	}
}

// settingsGetCommand creates the settings get command.
func (c *CLI) settingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := settings.NewManager("")
			if err != nil {
				return err
			}
			cfg, err := m.Load()
			if err != nil {
				return err
			}

			value, err := settings.Get(&cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
}

// settingsSetCommand creates the settings set command.
func (c *CLI) settingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Example: `  filemerge settings set image.layout grid
  filemerge settings set text.line_numbers true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			m, err := settings.NewManager("")
			if err != nil {
				return err
			}
			cfg, err := m.Load()
			if err != nil {
				return err
			}
			if err := settings.Set(&cfg, key, value); err != nil {
				return err
			}
			if err := m.Save(cfg); err != nil {
				return err
			}

			stored, err := settings.Get(&cfg, key)
			if err != nil {
				return err
			}
			printSuccess("Saved")
			printSetting(key, stored)
			return nil
		},
	}
}

// settingsPathCommand creates the settings path command.
func (c *CLI) settingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := settings.NewManager("")
			if err != nil {
				return err
			}
			fmt.Println(m.Path())
			return nil
		},
	}
}

// settingsResetCommand creates the settings reset command.
func (c *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := settings.NewManager("")
			if err != nil {
				return err
			}
			if err := m.Reset(); err != nil {
				return err
			}
			printSuccess("Settings restored to defaults")
			printFile(m.Path())
			return nil
		},
	}
}

// printSetting prints one "key = value" line, TOML style.
func printSetting(key, value string) {
	fmt.Println("  " + StyleDim.Render(key) + " = " + StyleValue.Render(value))
}
