package tag

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// UpdateCmd returns the tag update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a tag's name and color",
		Long: `Update a tag. The change propagates into every task that carries
the tag.

Examples:
  kodama tag update --tag=Urgent --name="On Fire" --color="#e05252"
`,
		RunE: runUpdate,
	}

	cmd.Flags().String("tag", "", "Tag id or name (required)")
	if err := cmd.MarkFlagRequired("tag"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("name", "", "New name (defaults to current)")
	cmd.Flags().String("color", "", "New hex color (defaults to current)")
	addOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tagRef, _ := cmd.Flags().GetString("tag")
	name, _ := cmd.Flags().GetString("name")
	color, _ := cmd.Flags().GetString("color")
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

	target, ok := cli.ResolveTag(c, formatter, tagRef)
	if !ok {
		os.Exit(cli.ExitNotFound)
	}

	if name == "" {
		name = target.Name
	}
	if color == "" {
		color = target.Color
	}

	if err := c.Store.UpdateTag(ctx, target.ID, name, color); err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}

	updated, _ := c.Store.FindTag(string(target.ID))
	human := styles.SuccessStyle.Render("Updated tag") + " " + styles.TagChip(updated)
	return formatter.Success(string(target.ID), updated, human)
}
