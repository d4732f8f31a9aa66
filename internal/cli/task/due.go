package task

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// DueCmd returns the task due subcommand
func DueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "Set or clear a task's due date",
		Long: `Set a task's due date (YYYY-MM-DD), or clear it with --clear.

Examples:
  kodama task due --task=4f1a --date=2026-09-15
  kodama task due --task=4f1a --clear
`,
		RunE: runDue,
	}

	addTargetFlags(cmd)
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("date", "", "Due date in YYYY-MM-DD form")
	cmd.Flags().Bool("clear", false, "Clear the due date")
	addOutputFlags(cmd)

	return cmd
}

func runDue(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	listRef, _ := cmd.Flags().GetString("list")
	taskRef, _ := cmd.Flags().GetString("task")
	dateStr, _ := cmd.Flags().GetString("date")
	clear, _ := cmd.Flags().GetBool("clear")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	// Exactly one of --date / --clear must be given
	if clear == (dateStr != "") {
		_ = formatter.Error("USAGE_ERROR", "provide either --date or --clear")
		os.Exit(cli.ExitUsage)
	}

	var dueDate *time.Time
	if !clear {
		parsed, err := cli.ParseDate(dateStr)
		if err != nil {
			_ = formatter.Error("VALIDATION_ERROR", err.Error())
			os.Exit(cli.ExitValidation)
		}
		dueDate = &parsed
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

	if err := c.Store.SetTaskDueDate(ctx, listID, target.ID, dueDate); err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}

	result, _ := c.Store.GetTask(listID, target.ID)
	var human string
	if dueDate != nil {
		human = styles.SuccessStyle.Render("Due date set") + " " +
			styles.SubtitleStyle.Render(dueDate.Format("2006-01-02")) + " " + result.Content
	} else {
		human = styles.SuccessStyle.Render("Due date cleared") + " " + result.Content
	}
	return formatter.Success(string(target.ID), result, human)
}
