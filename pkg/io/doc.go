// Package io provides JSON import and export for scan results, and the
// plain-text error log.
//
// # JSON Format
//
// A result is a single object keyed by dependency name. Keys and location
// lists are sorted alphabetically; a dependency whose version was never
// detected has a null version:
//
//	{
//	  "OpenSSL": {
//	    "version": "1.1",
//	    "locations": ["CMakeLists.txt"]
//	  },
//	  "openssl": {
//	    "version": null,
//	    "locations": ["include/tls.h"]
//	  }
//	}
//
// # Import
//
// Use [ImportJSON] to read a result from a file path, or [ReadJSON] to read
// from any io.Reader. Both accept exactly the format written by the export
// functions, so a saved report can be rendered or served later.
//
// # Export
//
// Use [ExportJSON] to write a result to a file, or [WriteJSON] to write to any
// io.Writer.
//
// # Error Log
//
// [ResetErrorLog] removes the log at the start of a run and [AppendErrorLog]
// appends one line per error:
//
//	Error processing src/blob.h: FILE_DECODE: content is not valid UTF-8 text
package io
