package tag

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// CreateCmd returns the tag create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new tag",
		Long: `Create a tag with a name and hex color.

Examples:
  kodama tag create --name="Errands" --color="#8ab6d6"
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Tag name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("color", "", "Hex color like #8ab6d6 (required)")
	if err := cmd.MarkFlagRequired("color"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	created, err := c.Store.AddTag(ctx, name, color)
	if err != nil {
		_ = formatter.Error("VALIDATION_ERROR", err.Error())
		os.Exit(cli.ExitValidation)
	}

	human := styles.SuccessStyle.Render("Created tag") + " " + styles.TagChip(created) + " " +
		styles.SubtitleStyle.Render("("+cli.ShortID(string(created.ID))+")")
	return formatter.Success(string(created.ID), created, human)
}
