package task

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// RemindCmd returns the task remind subcommand
func RemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Set or clear a task's email reminder",
		Long: `Associate an email address with a task, or clear it with --clear.
Setting an address always re-arms the reminder (the sent flag resets).

Examples:
  kodama task remind --task=4f1a --email=sophie@example.com
  kodama task remind --task=4f1a --clear
`,
		RunE: runRemind,
	}

	addTargetFlags(cmd)
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("email", "", "Recipient email address")
	cmd.Flags().Bool("clear", false, "Clear the reminder")
	addOutputFlags(cmd)

	return cmd
}

func runRemind(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listRef, _ := cmd.Flags().GetString("list")
	taskRef, _ := cmd.Flags().GetString("task")
	email, _ := cmd.Flags().GetString("email")
	clear, _ := cmd.Flags().GetBool("clear")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	// Exactly one of --email / --clear must be given
	if clear == (email != "") {
		_ = formatter.Error("USAGE_ERROR", "provide either --email or --clear")
		os.Exit(cli.ExitUsage)
	}
	if clear {
		email = ""
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

	if err := c.Store.SetTaskEmailReminder(ctx, listID, target.ID, email); err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}

	result, _ := c.Store.GetTask(listID, target.ID)
	var human string
	if email != "" {
		human = styles.SuccessStyle.Render("Reminder set") + " " +
			styles.SubtitleStyle.Render(email) + " " + result.Content
	} else {
		human = styles.SuccessStyle.Render("Reminder cleared") + " " + result.Content
	}
	return formatter.Success(string(target.ID), result, human)
}
