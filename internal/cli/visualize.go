package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/krivobok/pomviz/pkg/deps"
	"github.com/krivobok/pomviz/pkg/maven"
	"github.com/krivobok/pomviz/pkg/render"
)

// visualizeOptions holds the resolved flag and config values for a single run.
type visualizeOptions struct {
	graphviz string        // external Graphviz executable (empty: embedded renderer)
	depth    int           // maximum traversal depth
	repo     string        // repository base URL
	output   string        // output directory
	refresh  bool          // bypass the HTTP response cache
	dotOnly  bool          // skip PNG rendering
	cacheTTL time.Duration // descriptor cache duration
}

// visualizeCommand creates the visualize command.
func (c *CLI) visualizeCommand() *cobra.Command {
	opts := visualizeOptions{
		depth:    deps.DefaultMaxDepth,
		repo:     deps.DefaultRepository,
		output:   ".",
		cacheTTL: deps.DefaultCacheTTL,
	}

	cmd := &cobra.Command{
		Use:   "visualize <groupId:artifactId:version>",
		Short: "Render the transitive dependency graph of a Maven artifact",
		Long: `Render the transitive dependency graph of a Maven artifact.

The artifact's POM descriptor is fetched from the repository and its
dependencies are crawled transitively up to --depth levels. The graph is
written as a Graphviz DOT file and rendered to PNG, either with the bundled
renderer or with an external executable given via --graphviz.

Descriptors are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFileConfig(cmd, &opts, c.Logger)
			return c.runVisualize(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.graphviz, "graphviz", "", "path to a Graphviz executable (default: embedded renderer)")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, "maximum dependency depth to traverse")
	cmd.Flags().StringVar(&opts.repo, "repo", opts.repo, "Maven repository base URL")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "refetch descriptors, bypassing the cache")
	cmd.Flags().BoolVar(&opts.dotOnly, "dot-only", false, "write only the DOT file, skip PNG rendering")

	return cmd
}

// runVisualize resolves the dependency graph and writes the DOT and PNG files.
func (c *CLI) runVisualize(ctx context.Context, coordinate string, opts visualizeOptions) error {
	var gv *render.Graphviz
	if opts.graphviz != "" {
		var err error
		if gv, err = render.NewGraphviz(opts.graphviz); err != nil {
			return err
		}
	}

	client, err := maven.NewClient(opts.cacheTTL)
	if err != nil {
		return fmt.Errorf("initialize descriptor cache: %w", err)
	}
	resolver := deps.NewResolver(client)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s...", coordinate))
	spinner.Start()

	g, err := resolver.Resolve(ctx, coordinate, deps.Options{
		Repository: opts.repo,
		MaxDepth:   opts.depth,
		Refresh:    opts.refresh,
		Logger:     c.Logger.Warnf,
	})
	if err != nil {
		if spinner.Cancelled() {
			// Interrupted by the user; the exit code says enough.
			spinner.Stop()
		} else {
			spinner.StopWithError("Resolution failed")
		}
		return fmt.Errorf("resolve %s: %w", coordinate, err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Resolved %d artifacts", g.NodeCount()))

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	dot := render.ToDOT(g)
	stem := render.SanitizeFilename(coordinate)

	dotPath := filepath.Join(opts.output, stem+".dot")
	if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("write DOT file: %w", err)
	}

	printSuccess("Visualized %s", coordinate)
	printFile(dotPath)

	if !opts.dotOnly {
		pngPath := filepath.Join(opts.output, stem+".png")
		if err := c.renderPNG(ctx, gv, dot, dotPath, pngPath); err != nil {
			return err
		}
		printFile(pngPath)
	}

	printStats(g.NodeCount(), g.EdgeCount())
	return nil
}

// renderPNG produces the PNG, shelling out when an executable was configured
// and falling back to the embedded renderer otherwise.
func (c *CLI) renderPNG(ctx context.Context, gv *render.Graphviz, dot, dotPath, pngPath string) error {
	if gv != nil {
		c.Logger.Debugf("rendering with %s", gv.Path())
		if err := gv.RenderPNG(ctx, dotPath, pngPath); err != nil {
			return fmt.Errorf("render PNG: %w", err)
		}
		return nil
	}

	c.Logger.Debug("rendering with embedded graphviz")
	data, err := render.RenderPNGEmbedded(ctx, dot)
	if err != nil {
		return fmt.Errorf("render PNG: %w", err)
	}
	if err := os.WriteFile(pngPath, data, 0o644); err != nil {
		return fmt.Errorf("write PNG file: %w", err)
	}
	return nil
}
