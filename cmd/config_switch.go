package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/brogergvhs/sanpid/internal/config"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			picked, err := pickProfile()
			if err != nil {
				return err
			}
			label = picked
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Switched to:", label)
		return nil
	},
}

// pickProfile shows the profile list with the cursor on the active one.
func pickProfile() (string, error) {
	profiles, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(profiles) == 0 {
		return "", errors.New("no configs available, run `sanpid config init` first")
	}

	cursor := 0
	for i, p := range profiles {
		if p.Active {
			cursor = i
		}
	}

	sel := promptui.Select{
		Label:     "Select config",
		Items:     profiles,
		CursorPos: cursor,
		Size:      min(len(profiles), 10),
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ .Label | cyan }}{{ if .Active }} (active){{ end }}",
			Inactive: "  {{ .Label }}{{ if .Active }} (active){{ end }}",
			Selected: "{{ .Label | green }}",
		},
	}

	idx, _, err := sel.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return profiles[idx].Label, nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
