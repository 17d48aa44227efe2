// Package cli implements the microtosca command-line interface.
//
// # Commands
//
//   - validate: import a topology document and report what it contains
//   - fmt: rewrite a document in canonical form
//   - inspect: summarize nodes by kind, links and edge groups
//   - layout: run the Graphviz layout and write node and link geometry
//   - dot: print the DOT document the layout is computed from
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/microtosca/config.toml, or the file
// given with --config. Flags always win over the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and also receives import, export and layout
// events through the observability hooks.
package cli
