package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli/guide"
	"github.com/kodama-kanban/kodama/internal/cli/list"
	"github.com/kodama-kanban/kodama/internal/cli/tag"
	"github.com/kodama-kanban/kodama/internal/cli/task"
)

var rootCmd = &cobra.Command{
	Use:   "kodama",
	Short: "Kodama - a terminal kanban to-do board",
	Long: `Kodama is a kanban-style to-do board for the terminal.

Run without arguments to open the interactive board, or use the
subcommands to script against the same state.`,
}

func init() {
	rootCmd.AddCommand(list.ListCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(tag.TagCmd())
	rootCmd.AddCommand(guide.GuideCmd())
}

func Execute() error {
	return rootCmd.Execute()
}

// HasSubcommand reports whether args name a known subcommand or flag, i.e.
// whether Execute should run instead of the TUI board.
func HasSubcommand(args []string) bool {
	if len(args) == 0 {
		return false
	}
	cmd, _, err := rootCmd.Find(args)
	return err == nil && cmd != rootCmd || args[0] == "help" || args[0] == "--help" || args[0] == "-h"
}
