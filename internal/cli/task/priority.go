package task

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
	"github.com/kodama-kanban/kodama/internal/models"
)

// PriorityCmd returns the task priority subcommand
func PriorityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priority",
		Short: "Set a task's priority",
		Long: `Set a task's priority to low, medium, or high.

Examples:
  kodama task priority --task=4f1a --priority=high
`,
		RunE: runPriority,
	}

	addTargetFlags(cmd)
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("priority", "", "Priority: low, medium, high (required)")
	if err := cmd.MarkFlagRequired("priority"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runPriority(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listRef, _ := cmd.Flags().GetString("list")
	taskRef, _ := cmd.Flags().GetString("task")
	priorityStr, _ := cmd.Flags().GetString("priority")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	priority, err := models.ParsePriority(priorityStr)
	if err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}

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

	if err := c.Store.SetTaskPriority(ctx, listID, target.ID, priority); err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}

	result, _ := c.Store.GetTask(listID, target.ID)
	human := styles.SuccessStyle.Render("Set priority") + " " +
		styles.PriorityBadge(result.Priority) + " " +
		styles.SubtitleStyle.Render("on") + " " + result.Content
	return formatter.Success(string(target.ID), result, human)
}
