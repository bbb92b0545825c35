package reportpdf

import "time"

// PageSize represents paper dimensions in points (1/72 inch).
type PageSize struct {
	Width  float64 // Width in points.
	Height float64 // Height in points.
}

// Standard paper sizes, portrait, in points.
var (
	A3      = PageSize{Width: 841.89, Height: 1190.55}
	A4      = PageSize{Width: 595.28, Height: 841.89}
	A5      = PageSize{Width: 419.53, Height: 595.28}
	Letter  = PageSize{Width: 612, Height: 792}
	Legal   = PageSize{Width: 612, Height: 1008}
	Tabloid = PageSize{Width: 792, Height: 1224}
)

// Default output parameters.
const (
	// DefaultMargin is the uniform page margin in points.
	DefaultMargin = 10.0

	// DefaultSelector is the region captured when none is configured.
	DefaultSelector = "body"

	// DefaultFilename is the name handed to the save collaborator.
	DefaultFilename = "events-overview.pdf"
)

// ExportConfig controls a single export.
//
// A nil ExportConfig or zero-value fields use the defaults: A4 paper,
// portrait, a uniform 10 pt margin, the document body as the captured
// region, and "events-overview.pdf" as the filename.
type ExportConfig struct {
	// Size specifies the paper size in points. Defaults to A4.
	Size PageSize

	// Margin is the uniform page margin in points. Defaults to 10.
	// The captured raster is scaled to fit the width between the left
	// and right margins.
	Margin float64

	// Selector is a CSS selector naming the region to capture.
	// Defaults to "body".
	Selector string

	// Exclude lists CSS selectors for elements that must contribute
	// zero height to the capture (placeholder rows, toolbars). Matching
	// elements are hidden before the region is rasterized.
	Exclude []string

	// WaitFor is an optional CSS selector to wait for before capturing,
	// for content that renders asynchronously (charts, lazy tables).
	// When empty the export waits for the document body to be ready.
	WaitFor string

	// DeviceScale is the device scale factor used for rasterization.
	// Values above 1 produce crisper output at the cost of larger
	// documents. Defaults to 1.
	DeviceScale float64

	// Filename is the name handed to the save collaborator.
	// Defaults to "events-overview.pdf".
	Filename string

	// Created is the creation timestamp embedded in the document.
	// When zero, a fixed reference time is used so that exporting
	// unchanged content yields byte-identical documents.
	Created time.Time
}

// DefaultExportConfig returns an ExportConfig with all defaults applied.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Size:        A4,
		Margin:      DefaultMargin,
		Selector:    DefaultSelector,
		DeviceScale: 1.0,
		Filename:    DefaultFilename,
	}
}

// resolved returns an ExportConfig with all zero values replaced by defaults.
func (c *ExportConfig) resolved() ExportConfig {
	d := DefaultExportConfig()
	if c == nil {
		return d
	}
	r := *c
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Margin <= 0 {
		r.Margin = d.Margin
	}
	if r.Selector == "" {
		r.Selector = d.Selector
	}
	if r.DeviceScale <= 0 {
		r.DeviceScale = d.DeviceScale
	}
	if r.Filename == "" {
		r.Filename = d.Filename
	}
	return r
}
