package task

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// SendCmd returns the task send subcommand
func SendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a task's email reminder now",
		Long: `Trigger the task's email reminder. The task is marked sent on
invocation regardless of delivery outcome; without SMTP settings in the
config the reminder is logged instead of delivered.

Examples:
  kodama task send --task=4f1a
`,
		RunE: runSend,
	}

	addTargetFlags(cmd)
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
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
	if target.EmailReminder == "" {
		_ = formatter.ErrorWithSuggestion("NO_REMINDER",
			"task has no reminder address",
			"Set one with 'kodama task remind --task="+cli.ShortID(string(target.ID))+" --email=...'")
		os.Exit(cli.ExitValidation)
	}

	if err := c.Store.SendEmailReminder(ctx, listID, target.ID); err != nil {
		_ = formatter.Error("SEND_ERROR", err.Error())
		return err
	}

	result, _ := c.Store.GetTask(listID, target.ID)
	human := styles.SuccessStyle.Render("Reminder sent") + " " +
		styles.SubtitleStyle.Render("to "+result.EmailReminder+" for:") + " " + result.Content
	return formatter.Success(string(target.ID), result, human)
}
