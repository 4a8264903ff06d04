package deps

// Detection is one raw observation of a dependency name in a single file.
// An empty Version means the file mentioned the name without a version.
type Detection struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// HasVersion reports whether the detection carries a version.
func (d Detection) HasVersion() bool { return d.Version != "" }

// Extractor turns the text of a single file into detections.
// Each dialect (build script, package manifest, JSON manifest, source text)
// has its own implementation in a subpackage.
type Extractor interface {
	// Type returns the dialect identifier (e.g., "cmake", "vcpkg").
	Type() string
	// Supports reports whether this extractor handles the given lowercased
	// base file name.
	Supports(name string) bool
	// Extract returns the detections found in content. path is the file's
	// location relative to the scan root and is informational only.
	Extract(content, path string) ([]Detection, error)
}
