package task

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// AddCmd returns the task add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new task to a list",
		Long: `Add a task to the end of a list. New tasks start incomplete with
medium priority and no tags.

Examples:
  kodama task add --list="To Do" --content="Buy soot sprites"

  # Quiet mode for shell capture
  TASK_ID=$(kodama task add --list="To Do" --content="Buy soot sprites" --quiet)
`,
		RunE: runAdd,
	}

	cmd.Flags().String("list", "", "List id or name (required)")
	if err := cmd.MarkFlagRequired("list"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("content", "", "Task content (required)")
	if err := cmd.MarkFlagRequired("content"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listRef, _ := cmd.Flags().GetString("list")
	content, _ := cmd.Flags().GetString("content")
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

	target, ok := cli.ResolveList(c, formatter, listRef)
	if !ok {
		os.Exit(cli.ExitNotFound)
	}

	created, err := c.Store.AddTask(ctx, target.ID, content)
	if err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}
	if created == nil {
		_ = formatter.Error("LIST_NOT_FOUND", "list disappeared before the task could be added")
		os.Exit(cli.ExitNotFound)
	}

	human := styles.SuccessStyle.Render("Added task") + " " +
		created.Content + " " +
		styles.SubtitleStyle.Render("to "+target.Name+" ("+cli.ShortID(string(created.ID))+")")
	return formatter.Success(string(created.ID), created, human)
}
