package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/depscan/pkg/deps"
	"github.com/matzehuels/depscan/pkg/errors"
)

// ReadJSON decodes a result in the format written by [WriteJSON].
//
// A missing or null version is read as absent. Locations are sorted and
// de-duplicated. ReadJSON returns an INVALID_REPORT error if the JSON is
// malformed or a key is an empty name. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*deps.Result, error) {
	var data map[string]record
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "decode report")
	}

	records := make([]deps.Record, 0, len(data))
	for name, rec := range data {
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidReport, "report contains an empty dependency name")
		}
		r := deps.Record{Name: name, Locations: rec.Locations}
		if rec.Version != nil {
			r.Version = *rec.Version
		}
		records = append(records, r)
	}
	return deps.NewResult(records...), nil
}

// ImportJSON reads a JSON report file at path. A missing file is a
// FILE_NOT_FOUND error and any other open failure a FILE_READ error.
func ImportJSON(path string) (*deps.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		// The path error repeats the path; keep only its cause.
		cause := err
		var pe *fs.PathError
		if stderrors.As(err, &pe) {
			cause = pe.Err
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, cause, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileRead, cause, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
