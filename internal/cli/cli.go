package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/microtosca/pkg/buildinfo"
	topoio "github.com/matzehuels/microtosca/pkg/io"
	"github.com/matzehuels/microtosca/pkg/layout"
	"github.com/matzehuels/microtosca/pkg/observability"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "microtosca"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the config file is loaded, the logger is
// attached to the command context, and logging observability hooks are
// installed.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Microtosca models microservice architectures as typed graphs",
		Long:          `Microtosca validates, formats, inspects and lays out microservice topologies described as JSON documents of services, databases, communication patterns and the external users that call them.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/microtosca/config.toml)")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}

	observability.SetLayoutHooks(&logHooks{logger: c.Logger})
	observability.SetSerializationHooks(&logHooks{logger: c.Logger})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadGraph imports a topology document from path.
func (c *CLI) loadGraph(path string) (*topology.Graph, error) {
	g := topology.New("")
	if err := topoio.ImportJSON(g, path, topoio.Options{Logger: c.Logger}); err != nil {
		return nil, err
	}
	return g, nil
}

// rankDir resolves the --rankdir flag, falling back to the config file.
func (c *CLI) rankDir(flag string) (layout.RankDir, error) {
	if flag == "" {
		flag = c.config.RankDir
	}
	return layout.ParseRankDir(flag)
}
