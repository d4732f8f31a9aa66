package list

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// DeleteCmd returns the list delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task list and all its tasks",
		Long: `Delete a task list. All tasks in the list are removed with it;
tags stay in the tag collection even when no remaining task references them.

Examples:
  kodama list delete --list="Backlog"
`,
		RunE: runDelete,
	}

	cmd.Flags().String("list", "", "List id or name (required)")
	if err := cmd.MarkFlagRequired("list"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listRef, _ := cmd.Flags().GetString("list")
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

	if err := c.Store.DeleteTaskList(ctx, target.ID); err != nil {
		_ = formatter.Error("DELETE_ERROR", err.Error())
		return err
	}

	human := styles.SuccessStyle.Render("Deleted list") + " " +
		styles.TitleStyle.Render(target.Name) + " " +
		styles.SubtitleStyle.Render(fmt.Sprintf("(%d tasks removed)", len(target.Tasks)))
	return formatter.Success(string(target.ID), target, human)
}
