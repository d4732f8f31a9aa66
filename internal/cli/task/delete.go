package task

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task",
		Long: `Delete a task from its list.

Examples:
  kodama task delete --task=4f1a
`,
		RunE: runDelete,
	}

	addTargetFlags(cmd)
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listRef, _ := cmd.Flags().GetString("list")
	taskRef, _ := cmd.Flags().GetString("task")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	listID, target, ok := cli.ResolveTask(c, formatter, listRef, taskRef)
	if !ok {
		os.Exit(cli.ExitNotFound)
	}

	if err := c.Store.DeleteTask(ctx, listID, target.ID); err != nil {
		_ = formatter.Error("DELETE_ERROR", err.Error())
		return err
	}

	human := styles.SuccessStyle.Render("Deleted task") + " " + target.Content
	return formatter.Success(string(target.ID), target, human)
}
