// Package render provides visualizations of scan results.
//
// The [nodelink] subpackage draws the file-to-dependency graph with
// Graphviz:
//
//	dot := nodelink.ToDOT(result, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/depscan/pkg/render/nodelink
package render
