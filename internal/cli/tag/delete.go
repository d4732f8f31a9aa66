package tag

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodama-kanban/kodama/internal/cli"
	"github.com/kodama-kanban/kodama/internal/cli/styles"
)

// DeleteCmd returns the tag delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a tag",
		Long: `Delete a tag from the collection and from every task that
carries it.

Examples:
  kodama tag delete --tag=Urgent
`,
		RunE: runDelete,
	}

	cmd.Flags().String("tag", "", "Tag id or name (required)")
	if err := cmd.MarkFlagRequired("tag"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tagRef, _ := cmd.Flags().GetString("tag")
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

	if err := c.Store.DeleteTag(ctx, target.ID); err != nil {
		_ = formatter.Error("DELETE_ERROR", err.Error())
		return err
	}

	human := styles.SuccessStyle.Render("Deleted tag") + " " + styles.TagChip(target)
	return formatter.Success(string(target.ID), target, human)
}
