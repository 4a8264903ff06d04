package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscan/pkg/errors"
	"github.com/matzehuels/depscan/pkg/io"
	"github.com/matzehuels/depscan/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output path; the extension selects the format
	detailed bool   // show versions and file counts in dependency nodes
}

// renderCommand creates the render command for drawing a saved report.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <report.json>",
		Short: "Render a saved report as a file-to-dependency graph",
		Long: `Render draws a report written by "depscan scan -o" as a graph with an edge from
each file to every dependency detected in it.

The output format follows the file extension: .svg (default) or .dot.`,
		Example: `  depscan render deps.json
  depscan render deps.json -o graph.dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <report>.svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show versions and file counts")

	return cmd
}

func runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	result, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debug("report loaded", "path", input, "dependencies", result.Len())

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}

	dot := nodelink.ToDOT(result, nodelink.Options{Detailed: opts.detailed})

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		spinner := newSpinner("Rendering SVG...")
		spinner.Start()
		data, err = nodelink.RenderSVG(ctx, dot)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return err
		}
		spinner.Stop()
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported output format %q (want .svg or .dot)", ext)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %d dependencies", result.Len())
	printFile(output)
	return nil
}
