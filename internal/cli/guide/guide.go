// Package guide renders the embedded usage guide.
package guide

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	_ "embed"
)

//go:embed guide.md
var guideContent string

// GuideCmd returns the guide command
func GuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Show the kodama usage guide",
		Long:  `Render the usage guide in the terminal. Use --plain for raw markdown.`,
		RunE:  runGuide,
	}

	cmd.Flags().Bool("plain", false, "Print raw markdown without styling")

	return cmd
}

func runGuide(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	if plain {
		fmt.Print(guideContent)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// Fall back to raw markdown if the terminal renderer can't be built
		fmt.Print(guideContent)
		return nil
	}

	out, err := renderer.Render(guideContent)
	if err != nil {
		fmt.Print(guideContent)
		return nil
	}
	fmt.Print(out)
	return nil
}
