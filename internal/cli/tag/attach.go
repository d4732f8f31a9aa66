package tag

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// AttachCmd returns the tag attach subcommand
func AttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach a tag to a task",
		Long: `Attach a tag to a task. Attaching a tag the task already has is
a no-op.

Examples:
  kodama tag attach --tag=Urgent --task=4f1a
`,
		RunE: runAttach,
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

func runAttach(cmd *cobra.Command, args []string) error {
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

	if err := c.Store.AddTagToTask(ctx, listID, task.ID, target); err != nil {
		_ = formatter.Error("ATTACH_ERROR", err.Error())
		return err
	}

	result, _ := c.Store.GetTask(listID, task.ID)
	human := styles.SuccessStyle.Render("Attached") + " " + styles.TagChip(target) + " " +
		styles.SubtitleStyle.Render("to") + " " + result.Content
	return formatter.Success(string(task.ID), result, human)
}
