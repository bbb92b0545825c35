package reportpdf

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Exporter].
	ErrClosed = errors.New("reportpdf: exporter is closed")

	// ErrBusy is returned when an export is started while another export
	// on the same Exporter is still running. Exports are never queued.
	ErrBusy = errors.New("reportpdf: an export is already in progress")

	// ErrNoContent is returned when the capture step finds no region to
	// rasterize: the selector matches nothing, or the matched region has
	// zero visible area. No document is produced.
	ErrNoContent = errors.New("reportpdf: no capturable content")
)
