package task

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done",
		Short: "Toggle a task's completion",
		Long: `Flip a task between complete and incomplete.

Examples:
  kodama task done --task=4f1a
`,
		RunE: runDone,
	}

	addTargetFlags(cmd)
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runDone(cmd *cobra.Command, args []string) error {
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

	if err := c.Store.ToggleTaskCompletion(ctx, listID, target.ID); err != nil {
		_ = formatter.Error("TOGGLE_ERROR", err.Error())
		return err
	}

	result, _ := c.Store.GetTask(listID, target.ID)
	state := "incomplete"
	if result.Completed {
		state = "complete"
	}
	human := styles.SuccessStyle.Render("Marked "+state) + " " + result.Content
	return formatter.Success(string(target.ID), result, human)
}
