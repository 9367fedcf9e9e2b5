package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/sanpid/internal/config"
)

var flagAddFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config, optionally imported from a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), "Enter label for new config: ")
			label, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		}
		label = strings.TrimSpace(label)

		var (
			path string
			err  error
		)
		if flagAddFrom != "" {
			path, err = config.ImportConfig(label, flagAddFrom)
		} else {
			path, err = config.CreateEmptyConfig(label)
		}
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagAddFrom, "from", "", "import settings from an existing YAML file")
	configCmd.AddCommand(configAddCmd)
}
