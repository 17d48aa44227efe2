package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	topoio "github.com/matzehuels/microtosca/pkg/io"
)

// fmtCommand creates the fmt command for rewriting a document canonically.
func (c *CLI) fmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt [graph.json]",
		Short: "Print a topology document in canonical form",
		Long: `Print a topology document in canonical form.

The document is imported and exported again: nodes and links keep their order,
edge groups are regenerated from the external users, and indentation is
normalized. Use -w to overwrite the file instead of printing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			g, err := c.loadGraph(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			if !write {
				return topoio.WriteJSON(g, cmd.OutOrStdout())
			}
			if err := topoio.ExportJSON(g, path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printSuccess(cmd.OutOrStdout(), "Formatted")
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file")
	return cmd
}
