package list

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// CreateCmd returns the list create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task list",
		Long: `Create a new task list at the end of the board.

Examples:
  kodama list create --name="Backlog"

  # Quiet mode for shell capture
  LIST_ID=$(kodama list create --name="Backlog" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "List name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	created, err := c.Store.AddTaskList(ctx, name)
	if err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}

	human := styles.SuccessStyle.Render("Created list") + " " +
		styles.TitleStyle.Render(created.Name) + " " +
		styles.SubtitleStyle.Render("("+cli.ShortID(string(created.ID))+")")
	return formatter.Success(string(created.ID), created, human)
}
