package task

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to another list or position",
		Long: `Move a task to a destination list, optionally at a specific
position (0-based; defaults to the end). Out-of-range positions are clamped.

Examples:
  kodama task move --task=4f1a --to="In Progress"
  kodama task move --task=4f1a --to="To Do" --position=0
`,
		RunE: runMove,
	}

	addTargetFlags(cmd)
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("to", "", "Destination list id or name (required)")
	if err := cmd.MarkFlagRequired("to"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().Int("position", -1, "Destination position (0-based, default end)")
	addOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listRef, _ := cmd.Flags().GetString("list")
	taskRef, _ := cmd.Flags().GetString("task")
	destRef, _ := cmd.Flags().GetString("to")
	position, _ := cmd.Flags().GetInt("position")
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

	sourceListID, target, ok := cli.ResolveTask(c, formatter, listRef, taskRef)
	if !ok {
		os.Exit(cli.ExitNotFound)
	}

	dest, ok := cli.ResolveList(c, formatter, destRef)
	if !ok {
		os.Exit(cli.ExitNotFound)
	}

	source, _ := c.Store.FindList(string(sourceListID))
	sourceIndex := source.FindTask(target.ID)
	destIndex := position
	if destIndex < 0 {
		destIndex = len(dest.Tasks)
		if dest.ID == source.ID {
			destIndex = len(dest.Tasks) - 1
		}
	}

	if err := c.Store.MoveTask(ctx, sourceListID, sourceIndex, dest.ID, destIndex); err != nil {
		_ = formatter.Error("MOVE_ERROR", err.Error())
		return err
	}

	human := styles.SuccessStyle.Render("Moved task") + " " + target.Content + " " +
		styles.SubtitleStyle.Render(source.Name+" -> "+dest.Name)
	return formatter.Success(string(target.ID), target, human)
}
