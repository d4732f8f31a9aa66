package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kodama-kanban/kodama/cmd"
	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/logging"
	"github.com/kodama-kanban/kodama/internal/tui"
)

func main() {
	if err := logging.Init(); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	// Subcommands run the CLI; bare invocation opens the board.
	if cmd.HasSubcommand(os.Args[1:]) {
		if err := cmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	c, err := cli.NewCLI(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("Error closing: %v", err)
		}
	}()

	model := tui.NewBoard(c.Store, c.Config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
