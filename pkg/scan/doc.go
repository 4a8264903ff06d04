// Package scan walks a project tree and builds the consolidated dependency
// report.
//
// # Overview
//
// [Run] visits every regular file under a root directory. Each file is
// classified by name; files that no extractor claims are skipped without
// being opened. Claimed files are read, checked to be UTF-8 text, and handed
// to their extractor. Detections are folded into a [deps.Merger].
//
// # Errors
//
// Failures are contained per file. A file that cannot be read or is not
// text becomes a [FileError] in [Report.Errors] and contributes nothing;
// the walk continues with the next file. Only an invalid root or a
// cancelled context makes [Run] itself fail.
//
// # Concurrency
//
// By default files are processed one at a time on the calling goroutine.
// With [Options.Workers] greater than one, reading and extraction run in a
// worker pool while a single collector goroutine owns the merger, so the
// merger needs no locking. The final records are identical either way,
// except that when two files carry different versions for the same name,
// which one is seen first depends on traversal and scheduling order.
//
// # Caching
//
// When [Options.Cache] is set, detections are cached by dialect and file
// content hash. Cache failures are logged through [Options.Logger] and never
// turn into file errors.
//
// [deps.Merger]: github.com/matzehuels/depscan/pkg/deps.Merger
package scan
