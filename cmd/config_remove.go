package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/sanpid/internal/config"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		out := cmd.OutOrStdout()

		active, _ := config.CurrentLabel()
		if label == active && !forceRemove {
			if !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Config %q is currently active. Remove it anyway?", label)) {
				_, _ = fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		switched, err := config.RemoveConfig(label)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "Removed configuration %q\n", label)
		if switched {
			_, _ = fmt.Fprintf(out, "Active config is now %q\n", config.DefaultLabel)
		}
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "remove the active config without asking")
	configCmd.AddCommand(configRemoveCmd)
}
