package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/microtosca/pkg/layout"
)

// dotCommand creates the dot command for printing the Graphviz input.
func (c *CLI) dotCommand() *cobra.Command {
	var rankDir string

	cmd := &cobra.Command{
		Use:   "dot [graph.json]",
		Short: "Print the Graphviz DOT document used for layout",
		Long: `Print the Graphviz DOT document used for layout.

The output can be rendered directly, for example:

  microtosca dot graph.json | dot -Tsvg > graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.rankDir(rankDir)
			if err != nil {
				return err
			}
			g, err := c.loadGraph(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			dot, err := layout.ToDOT(g, dir)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), dot)
			return err
		},
	}

	cmd.Flags().StringVar(&rankDir, "rankdir", "", "rank direction: TB, BT, LR, RL (default from config, else TB)")
	return cmd
}
