package task

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a task's full details",
		Long: `Show everything about one task: content, state, priority, tags,
due date, reminder, and timestamps.

Examples:
  kodama task show --task=4f1a
  kodama task show --task=4f1a --json
`,
		RunE: runShow,
	}

	addTargetFlags(cmd)
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	if quietMode || jsonOutput {
		return formatter.Success(string(target.ID), target, "")
	}

	list, _ := c.Store.FindList(string(listID))

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(target.Content) + "\n\n")

	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", styles.SubtitleStyle.Render(name+":"), value))
	}

	field("ID", string(target.ID))
	field("List", list.Name)
	state := "incomplete"
	if target.Completed {
		state = "complete"
	}
	field("State", state)
	field("Priority", styles.PriorityBadge(target.Priority))

	if len(target.Tags) > 0 {
		chips := make([]string, len(target.Tags))
		for i, tag := range target.Tags {
			chips[i] = styles.TagChip(tag)
		}
		field("Tags", strings.Join(chips, " "))
	}
	if target.DueDate != nil {
		field("Due", target.DueDate.Format("2006-01-02"))
	}
	if target.EmailReminder != "" {
		reminder := target.EmailReminder
		if target.ReminderSent {
			reminder += " (sent)"
		}
		field("Reminder", reminder)
	}
	field("Created", target.CreatedAt.Format("2006-01-02 15:04"))
	field("Updated", target.UpdatedAt.Format("2006-01-02 15:04"))

	fmt.Println(styles.CardStyle.Render(strings.TrimRight(b.String(), "\n")))
	return nil
}
