package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/depscan/pkg/deps"
)

// record is the JSON shape of one dependency. Version is a pointer so an
// absent version encodes as null rather than "".
type record struct {
	Version   *string  `json:"version"`
	Locations []string `json:"locations"`
}

// WriteJSON encodes result as JSON and writes it to w.
// encoding/json sorts map keys, so dependency names come out in order;
// locations are already sorted by the merger.
func WriteJSON(result *deps.Result, w io.Writer) error {
	out := make(map[string]record, result.Len())
	for _, r := range result.Records() {
		rec := record{Locations: r.Locations}
		if rec.Locations == nil {
			rec.Locations = []string{}
		}
		if r.HasVersion() {
			v := r.Version
			rec.Version = &v
		}
		out[r.Name] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes result to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(result *deps.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(result, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
