// internal/importer/errors.go
package importer

import "errors"

var (
	// ErrNoVideoFiles indicates the selection held no supported video files.
	ErrNoVideoFiles = errors.New("no video files found in selection")

	// ErrNothingToImport indicates every file row was excluded.
	ErrNothingToImport = errors.New("nothing to import")
)
