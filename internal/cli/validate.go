package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	topoio "github.com/matzehuels/microtosca/pkg/io"
)

// validateCommand creates the validate command for checking a topology document.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [graph.json]",
		Short: "Check that a topology document is well formed",
		Long: `Check that a topology document is well formed.

The document is imported and exported again, so every check applied at either
boundary runs: required keys, known link types, resolvable link endpoints and
group members, and unique node names. Unknown node and group types are
reported as warnings and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			doc, err := topoio.Export(g)
			if err != nil {
				return fmt.Errorf("check %s: %w", args[0], err)
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Valid topology %q", doc.Name)
			printStats(w, len(doc.Nodes), len(doc.Links), len(doc.Groups))
			return nil
		},
	}
}
