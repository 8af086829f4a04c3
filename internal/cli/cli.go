// Package cli implements the huegraph command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kat/huegraph/internal/config"
	"github.com/kat/huegraph/internal/graph"
	"github.com/kat/huegraph/internal/theme"
)

// App carries the state shared by every command: configuration, the
// output streams, and the flag values cobra binds.
type App struct {
	out    io.Writer
	logger *log.Logger
	cfg    *config.Config

	filePath  string
	themeName string
	configDir string
	verbose   bool
}

// New creates an App writing to the given stream.
func New(out io.Writer) *App {
	return &App{
		out:    out,
		logger: log.New(os.Stderr),
		cfg:    config.Default(),
	}
}

// Root builds the huegraph command tree.
func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "huegraph",
		Short: "Edit CSS color variables as a live dependency graph",
		Long: "huegraph loads the custom-property blocks of a stylesheet into a\n" +
			"reactive dependency graph, lets you edit and repair colors, and\n" +
			"exports the changed variables as a CSS rule block.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.filePath, "file", "f", "", "stylesheet to load")
	root.PersistentFlags().StringVarP(&a.themeName, "theme", "t", "", "theme selector to apply (default: first block)")
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory override")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.exportCommand(),
		a.setCommand(),
		a.checkCommand(),
		a.filterCommand(),
		a.themesCommand(),
	)
	return root
}

// Execute runs the CLI against os.Args and exits non-zero on error.
func Execute() {
	app := New(os.Stdout)
	if err := app.Root().Execute(); err != nil {
		app.logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setup loads the configuration and applies the logging flags.
func (a *App) setup() error {
	var (
		m   *config.Manager
		err error
	)
	if a.configDir != "" {
		m = config.NewManagerAt(a.configDir)
	} else {
		m, err = config.NewManager()
	}
	if err != nil {
		a.logger.Warn("using default configuration", "error", err)
	} else if cfg, err := m.Load(); err != nil {
		a.logger.Warn("using default configuration", "error", err)
	} else {
		a.cfg = cfg
	}

	level := a.cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	if parsed, err := log.ParseLevel(level); err == nil {
		a.logger.SetLevel(parsed)
	}
	return nil
}

// loadGraph reads the stylesheet, registers every block as a theme and
// seeds a graph from the requested one.
func (a *App) loadGraph() (*graph.Graph, *theme.Store, string, error) {
	if a.filePath == "" {
		return nil, nil, "", fmt.Errorf("no stylesheet given, use --file")
	}
	data, err := os.ReadFile(a.filePath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read stylesheet: %w", err)
	}

	store := theme.NewStore()
	store.SetLogger(a.logger)
	if err := store.AddSheet(string(data)); err != nil {
		return nil, nil, "", fmt.Errorf("failed to parse %s: %w", a.filePath, err)
	}

	name := a.themeName
	if name == "" {
		name = store.Themes()[0]
	}

	g := graph.New()
	g.SetLogger(a.logger)
	g.SetCooldown(a.cfg.UpdateWindow)
	if err := store.Apply(g, name); err != nil {
		return nil, nil, "", err
	}
	return g, store, name, nil
}

// applyEdits runs name=value assignments against the graph.
func applyEdits(g *graph.Graph, edits []string) error {
	for _, edit := range edits {
		eq := strings.Index(edit, "=")
		if eq < 0 {
			return fmt.Errorf("edit %q is not name=value", edit)
		}
		name, value := strings.TrimSpace(edit[:eq]), strings.TrimSpace(edit[eq+1:])
		if err := g.SetValue(name, value, false); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}
