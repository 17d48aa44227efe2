package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/microtosca/pkg/cache"
	"github.com/matzehuels/microtosca/pkg/layout"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// layoutCommand creates the layout command for computing diagram geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output, rankDir string
		noCache         bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute diagram positions for a topology",
		Long: `Compute diagram positions for a topology.

Every node, external users and squads included, is placed by the Graphviz
"dot" engine using longest-path ranking. The result is a layout.json file
holding node boxes and link routes keyed by node name.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd, args[0], rankDir, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&rankDir, "rankdir", "", "rank direction: TB, BT, LR, RL (default from config, else TB)")
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, input, rankDir, output string, noCache bool) error {
	dir, err := c.rankDir(rankDir)
	if err != nil {
		return err
	}

	g, err := c.loadGraph(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	store := c.newCache(noCache)
	defer store.Close()
	engine := &layout.Cached{Engine: layout.Graphviz{}, Cache: store, TTL: layoutTTL}

	prog := newProgress(loggerFromContext(ctx))
	if err := layout.Apply(ctx, g, string(dir), engine); err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if engine.Hit() {
		prog.done(fmt.Sprintf("Reused cached layout for %d nodes", g.NodeCount()))
	} else {
		prog.done(fmt.Sprintf("Laid out %d nodes", g.NodeCount()))
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := writeSnapshotFile(g, dir, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	w := cmd.OutOrStdout()
	printSuccess(w, "Layout complete")
	printFile(w, outputPath)
	printStats(w, g.NodeCount(), g.LinkCount(), len(g.ExternalUsers()))
	printNewline(w)
	printNextStep(w, "Inspect DOT", appName+" dot --rankdir "+string(dir)+" "+input)
	return nil
}

// layoutTTL bounds how long cached layouts are kept.
const layoutTTL = 7 * 24 * time.Hour

// newCache opens the layout cache, falling back to no caching when the
// cache directory is unusable.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NullCache{}
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NullCache{}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("layout cache disabled", "err", err)
		return cache.NullCache{}
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/microtosca/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func writeSnapshotFile(g *topology.Graph, dir layout.RankDir, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return layout.WriteSnapshot(g, dir, f)
}
