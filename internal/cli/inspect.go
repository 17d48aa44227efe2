package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/microtosca/pkg/topology"
)

// inspectCommand creates the inspect command for summarizing a topology.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Summarize the nodes, links and edge groups of a topology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			printInspect(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

func printInspect(w io.Writer, g *topology.Graph) {
	name := g.Name()
	if name == "" {
		name = "(unnamed)"
	}
	printTitle(w, name)

	var runtime, deployment int
	for _, l := range g.Links() {
		if l.IsRunTime() {
			runtime++
		} else {
			deployment++
		}
	}

	printKeyValue(w, "services", strconv.Itoa(len(g.Services())))
	printKeyValue(w, "databases", strconv.Itoa(len(g.Databases())))
	printKeyValue(w, "comm. patterns", strconv.Itoa(len(g.CommunicationPatterns())))
	printKeyValue(w, "runtime links", strconv.Itoa(runtime))
	printKeyValue(w, "deploy links", strconv.Itoa(deployment))

	users := g.ExternalUsers()
	if len(users) == 0 {
		return
	}
	printNewline(w)
	printTitle(w, "edge groups")
	for _, u := range users {
		var members []string
		for _, n := range g.OutboundNeighbors(u) {
			members = append(members, n.Name)
		}
		printDetail(w, "%s %s %s", u.GroupName, iconArrow, strings.Join(members, ", "))
	}
}
