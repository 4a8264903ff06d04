package io

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultErrorLog is the error log file name used when none is configured.
const DefaultErrorLog = "cpp_parse_errors.txt"

// ResetErrorLog removes the error log at path. A missing file is not an error.
func ResetErrorLog(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reset error log: %w", err)
	}
	return nil
}

// AppendErrorLog appends one line per error to the log at path, creating
// the file if needed. Nothing is written when errs is empty.
func AppendErrorLog(path string, errs ...error) error {
	if len(errs) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	for _, e := range errs {
		if _, err := fmt.Fprintln(f, e.Error()); err != nil {
			f.Close()
			return fmt.Errorf("write error log: %w", err)
		}
	}
	return f.Close()
}
