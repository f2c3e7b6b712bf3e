package main

import (
	"context"

	"github.com/spf13/cobra"

	"scratchmenu/internal/app"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the menu entries without showing a menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workspace, _ := cmd.Flags().GetBool("workspace")
		return runSession(cmd, false, func(ctx context.Context, l *app.Launcher) error {
			return l.List(ctx, scopeFor(workspace), cmd.OutOrStdout())
		})
	},
}

func scopeFor(workspace bool) app.Scope {
	if workspace {
		return app.ScopeWorkspace
	}
	return app.ScopeTree
}

func init() {
	listCmd.Flags().BoolP("workspace", "w", false, "only the focused workspace")
	rootCmd.AddCommand(listCmd)
}
