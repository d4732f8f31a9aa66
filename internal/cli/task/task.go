// Package task implements the `kodama task` command group.
package task

import (
	"github.com/spf13/cobra"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(EditCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(DoneCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(PriorityCmd())
	cmd.AddCommand(DueCmd())
	cmd.AddCommand(RemindCmd())
	cmd.AddCommand(SendCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("list", "", "List id or name (narrows the task search)")
	cmd.Flags().String("task", "", "Task id, id prefix, or exact content (required)")
}
