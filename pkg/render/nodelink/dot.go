package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depscan/pkg/deps"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the version and location count in dependency
	// labels. When false, only the dependency name is shown.
	Detailed bool
}

// ToDOT converts a scan result to Graphviz DOT format.
// The graph is bipartite: one node per file, one node per dependency, and an
// edge from each file to every dependency detected in it. The resulting DOT
// string can be rendered with [RenderSVG].
//
// Dependencies without a known version are drawn dashed.
func ToDOT(result *deps.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	records := result.Records()

	for _, file := range files(records) {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=note, style=filled, fillcolor=\"#f4f4f4\"];\n", fileID(file), file)
	}

	buf.WriteString("\n")
	for _, rec := range records {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(rec, opts.Detailed))}
		if !rec.HasVersion() {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", depID(rec.Name), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, rec := range records {
		for _, loc := range rec.Locations {
			fmt.Fprintf(&buf, "  %q -> %q;\n", fileID(loc), depID(rec.Name))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Files and dependencies live in separate ID namespaces so a file named like
// a dependency never collapses into it.
func fileID(path string) string { return "file:" + path }
func depID(name string) string { return "dep:" + name }

func files(records []deps.Record) []string {
	var out []string
	for _, rec := range records {
		out = append(out, rec.Locations...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func fmtLabel(rec deps.Record, detailed bool) string {
	if !detailed {
		return rec.Name
	}

	version := rec.Version
	if !rec.HasVersion() {
		version = "Version not found"
	}
	return fmt.Sprintf("%s\n%s\nfiles: %d", rec.Name, version, len(rec.Locations))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the image scales from its
// viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
