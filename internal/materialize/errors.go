package materialize

import "errors"

var (
	// ErrSourceMissing is returned when the template root does not exist or
	// is not a directory.
	ErrSourceMissing = errors.New("template source missing")

	// ErrSourceRead is returned when a template directory or file cannot be read.
	ErrSourceRead = errors.New("template source unreadable")

	// ErrDestinationWrite is returned when a destination directory or file
	// cannot be created or written.
	ErrDestinationWrite = errors.New("destination write failed")

	// ErrUnsupportedEntry is returned for template entries that are neither
	// directories nor regular files.
	ErrUnsupportedEntry = errors.New("unsupported template entry")
)
