package tag

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// ListCmd returns the tag list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		RunE:  runList,
	}

	addOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	tags := c.Store.Tags()

	if quietMode {
		for _, t := range tags {
			fmt.Println(t.ID)
		}
		return nil
	}
	if jsonOutput {
		return formatter.Success("", tags, "")
	}

	for _, t := range tags {
		fmt.Printf("%s %s %s\n",
			styles.SubtitleStyle.Render(cli.ShortID(string(t.ID))),
			styles.TagChip(t),
			styles.SubtitleStyle.Render(t.Color))
	}
	return nil
}
