package list

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// RenameCmd returns the list rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a task list",
		Long: `Rename an existing task list.

Examples:
  kodama list rename --list="To Do" --name="Inbox"
`,
		RunE: runRename,
	}

	cmd.Flags().String("list", "", "List id or name (required)")
	if err := cmd.MarkFlagRequired("list"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("name", "", "New name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listRef, _ := cmd.Flags().GetString("list")
	name, _ := cmd.Flags().GetString("name")
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

	if err := c.Store.UpdateTaskList(ctx, target.ID, name); err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}

	renamed, _ := c.Store.FindList(string(target.ID))
	human := styles.SuccessStyle.Render("Renamed list") + " " +
		styles.SubtitleStyle.Render(target.Name) + " -> " +
		styles.TitleStyle.Render(renamed.Name)
	return formatter.Success(string(target.ID), renamed, human)
}
