package tag

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// DetachCmd returns the tag detach subcommand
func DetachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detach",
		Short: "Detach a tag from a task",
		Long: `Remove a tag from a task. The tag itself stays in the collection.

Examples:
  kodama tag detach --tag=Urgent --task=4f1a
`,
		RunE: runDetach,
	}

	cmd.Flags().String("tag", "", "Tag id or name (required)")
	if err := cmd.MarkFlagRequired("tag"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("list", "", "List id or name (narrows the task search)")
	cmd.Flags().String("task", "", "Task id, id prefix, or exact content (required)")
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runDetach(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tagRef, _ := cmd.Flags().GetString("tag")
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

	target, ok := cli.ResolveTag(c, formatter, tagRef)
	if !ok {
		os.Exit(cli.ExitNotFound)
	}
	listID, task, ok := cli.ResolveTask(c, formatter, listRef, taskRef)
	if !ok {
		os.Exit(cli.ExitNotFound)
	}

	if err := c.Store.RemoveTagFromTask(ctx, listID, task.ID, target.ID); err != nil {
		_ = formatter.Error("DETACH_ERROR", err.Error())
		return err
	}

	result, _ := c.Store.GetTask(listID, task.ID)
	human := styles.SuccessStyle.Render("Detached") + " " + styles.TagChip(target) + " " +
		styles.SubtitleStyle.Render("from") + " " + result.Content
	return formatter.Success(string(task.ID), result, human)
}
