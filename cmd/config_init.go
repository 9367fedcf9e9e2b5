package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/sanpid/internal/config"
)

var flagInitYes bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if path, err := config.ConfigPathByLabel(config.DefaultLabel); err == nil {
			_, _ = fmt.Fprintf(out, "Configuration already exists at:\n  %s\n", path)
			_, _ = fmt.Fprintln(out, "Use `sanpid config reset` to recreate it.")
			return nil
		}

		_, _ = fmt.Fprintln(out, "Default configuration:")
		config.DefaultConfig().Print(out)
		_, _ = fmt.Fprintln(out)

		if !flagInitYes && !confirm(cmd.InOrStdin(), out, "Create Default config?") {
			_, _ = fmt.Fprintln(out, "Aborted.")
			return nil
		}

		path, err := config.InitDefaultConfig()
		if err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		_, _ = fmt.Fprintln(out, "Config created at:", path)
		_, _ = fmt.Fprintf(out, "This config is now active (label: %s).\n", config.DefaultLabel)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagInitYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configInitCmd)
}
