package list

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
	"github.com/kodama-kanban/kodama/internal/models"
)

// ShowCmd returns the list show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show lists and their tasks",
		Long: `Show the whole board, or a single list with --list.

Examples:
  kodama list show
  kodama list show --list="In Progress"
  kodama list show --json
`,
		RunE: runShow,
	}

	cmd.Flags().String("list", "", "Show only this list (id or name)")
	addOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	var lists []models.TaskList
	if listRef != "" {
		target, ok := cli.ResolveList(c, formatter, listRef)
		if !ok {
			return nil
		}
		lists = []models.TaskList{target}
	} else {
		lists = c.Store.Lists()
	}

	if quietMode {
		for _, l := range lists {
			fmt.Println(l.ID)
		}
		return nil
	}
	if jsonOutput {
		return formatter.Success("", lists, "")
	}

	var b strings.Builder
	for i, l := range lists {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderList(l))
	}
	fmt.Print(b.String())
	return nil
}

func renderList(l models.TaskList) string {
	var b strings.Builder
	header := styles.TitleStyle.Render(l.Name) + " " +
		styles.SubtitleStyle.Render(fmt.Sprintf("(%s, %d tasks)", cli.ShortID(string(l.ID)), len(l.Tasks)))
	b.WriteString(header + "\n")

	for _, task := range l.Tasks {
		b.WriteString("  " + renderTaskLine(task) + "\n")
	}
	return b.String()
}

func renderTaskLine(task models.Task) string {
	content := task.Content
	if task.Completed {
		content = styles.DoneStyle.Render(content)
	}

	parts := []string{
		styles.SubtitleStyle.Render(cli.ShortID(string(task.ID))),
		styles.PriorityBadge(task.Priority),
		content,
	}
	for _, tag := range task.Tags {
		parts = append(parts, styles.TagChip(tag))
	}
	if task.DueDate != nil {
		parts = append(parts, styles.SubtitleStyle.Render("due "+task.DueDate.Format("2006-01-02")))
	}
	if task.EmailReminder != "" {
		marker := "@" + task.EmailReminder
		if task.ReminderSent {
			marker += " (sent)"
		}
		parts = append(parts, styles.SubtitleStyle.Render(marker))
	}
	return strings.Join(parts, " ")
}
