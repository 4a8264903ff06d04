// Package nodelink renders scan results as node-link diagrams.
//
// # Overview
//
// The diagram has two kinds of nodes: source files (drawn as notes) and
// dependencies (drawn as rounded boxes). An arrow runs from a file to each
// dependency detected in it, so widely used libraries collect many incoming
// edges. Dependencies with no known version are drawn dashed.
//
// # Usage
//
//	dot := nodelink.ToDOT(result, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] produces Graphviz DOT source that can be rendered via [RenderSVG]
// or saved and processed with external Graphviz tools. Layout is
// left-to-right (rankdir=LR) with files in the first rank.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
