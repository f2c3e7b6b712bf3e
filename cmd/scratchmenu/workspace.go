package main

import (
	"github.com/spf13/cobra"

	"scratchmenu/internal/app"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Pick from the windows of the focused workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLauncher(cmd, app.ScopeWorkspace)
	},
}

func init() {
	rootCmd.AddCommand(workspaceCmd)
}
