package cli

import (
	"github.com/manifoldco/promptui"
)

// confirm asks a yes/no question on the terminal
func confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	return err == nil
}
