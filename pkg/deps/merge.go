package deps

import (
	"maps"
	"slices"
)

// Record is the consolidated result for one dependency name across a scan.
type Record struct {
	Name      string   // Case-sensitive dependency name
	Version   string   // Best-known version, empty if never detected
	Locations []string // Sorted, de-duplicated relative file paths
}

// HasVersion reports whether a version was detected for the record.
func (r Record) HasVersion() bool { return r.Version != "" }

type entry struct {
	version   string
	locations map[string]struct{}
}

// Merger folds detections into one record per dependency name.
//
// A version, once set, is never replaced; an absent version is filled in by
// the first detection that carries one. Locations only grow.
//
// Merger is not safe for concurrent use. Parallel callers must funnel
// detections through a single goroutine.
type Merger struct {
	entries map[string]*entry
}

// NewMerger creates an empty merger.
func NewMerger() *Merger {
	return &Merger{entries: make(map[string]*entry)}
}

// Record merges a single detection of name found in file.
func (m *Merger) Record(name, version, file string) {
	e, ok := m.entries[name]
	if !ok {
		e = &entry{locations: make(map[string]struct{})}
		m.entries[name] = e
	}
	if e.version == "" && version != "" {
		e.version = version
	}
	e.locations[file] = struct{}{}
}

// Add merges every detection found in file.
func (m *Merger) Add(file string, detections ...Detection) {
	for _, d := range detections {
		m.Record(d.Name, d.Version, file)
	}
}

// Len returns the number of distinct dependency names seen so far.
func (m *Merger) Len() int { return len(m.entries) }

// Result returns a snapshot of the merged records.
func (m *Merger) Result() *Result {
	r := &Result{records: make(map[string]Record, len(m.entries))}
	for name, e := range m.entries {
		r.records[name] = Record{
			Name:      name,
			Version:   e.version,
			Locations: slices.Sorted(maps.Keys(e.locations)),
		}
	}
	return r
}

// Result is an immutable mapping from dependency name to [Record].
type Result struct {
	records map[string]Record
}

// NewResult builds a Result from records, e.g. when reading a saved report.
// Locations are sorted and de-duplicated; a later record with the same name
// is merged into the earlier one.
func NewResult(records ...Record) *Result {
	m := NewMerger()
	for _, r := range records {
		if len(r.Locations) == 0 {
			m.Record(r.Name, r.Version, "")
			delete(m.entries[r.Name].locations, "")
			continue
		}
		for _, loc := range r.Locations {
			m.Record(r.Name, r.Version, loc)
		}
	}
	return m.Result()
}

// Len returns the number of records.
func (r *Result) Len() int { return len(r.records) }

// Get returns the record for name.
func (r *Result) Get(name string) (Record, bool) {
	rec, ok := r.records[name]
	return rec, ok
}

// Names returns all dependency names in sorted order.
func (r *Result) Names() []string {
	return slices.Sorted(maps.Keys(r.records))
}

// Records returns all records sorted by name.
func (r *Result) Records() []Record {
	out := make([]Record, 0, len(r.records))
	for _, name := range r.Names() {
		out = append(out, r.records[name])
	}
	return out
}
