// Package paginate partitions a captured raster into page-sized bands.
//
// The pipeline is: [Compute] derives the page geometry once, [Partition]
// splits the raster height into an ordered, gap-free sequence of slices,
// and [CutBand] + [EncodeBand] materialize each slice as an independent
// PNG image ready for placement on a document page.
package paginate

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned for invalid pipeline inputs.
var (
	// ErrInvalidGeometry is returned by [Compute] for non-positive
	// dimensions or a margin that leaves no content width.
	ErrInvalidGeometry = errors.New("paginate: invalid geometry")

	// ErrInvalidInput is returned by [Partition] and [CutBand] for
	// parameters outside the source raster.
	ErrInvalidInput = errors.New("paginate: invalid input")
)

// Geometry holds the page-relative dimensions for one export. It is
// computed once per export and immutable thereafter.
type Geometry struct {
	// PaperWidth and PaperHeight are the page dimensions in points.
	PaperWidth  float64
	PaperHeight float64

	// Margin is the uniform page margin in points.
	Margin float64

	// ContentWidth is PaperWidth - 2*Margin, the rendered width of
	// every band.
	ContentWidth float64

	// Scale maps source raster pixels to points: a band of h pixels
	// renders h*Scale points tall.
	Scale float64

	// PageContentHeight is the source raster height, in pixels, that
	// fits on one page.
	PageContentHeight int
}

// Compute derives the page geometry from the paper size, margin, and
// source raster width. It is a pure function of its inputs.
//
// PageContentHeight is the full paper height divided by the scale
// factor; the margin is applied only at placement. The rendered bottom
// of a full-height band therefore extends into the bottom margin. This
// matches the behavior of the dashboard exporter this library replaces,
// keeping page breaks at the same source rows.
func Compute(rasterWidth int, paperWidth, paperHeight, margin float64) (Geometry, error) {
	if rasterWidth <= 0 {
		return Geometry{}, fmt.Errorf("%w: raster width %d", ErrInvalidGeometry, rasterWidth)
	}
	if paperWidth <= 0 || paperHeight <= 0 || margin <= 0 {
		return Geometry{}, fmt.Errorf("%w: paper %gx%g margin %g", ErrInvalidGeometry, paperWidth, paperHeight, margin)
	}
	contentWidth := paperWidth - 2*margin
	if contentWidth <= 0 {
		return Geometry{}, fmt.Errorf("%w: margin %g leaves no content width on paper %g", ErrInvalidGeometry, margin, paperWidth)
	}

	scale := contentWidth / float64(rasterWidth)
	pageContentHeight := int(math.Floor(paperHeight / scale))
	if pageContentHeight <= 0 {
		return Geometry{}, fmt.Errorf("%w: page content height rounds to zero", ErrInvalidGeometry)
	}

	return Geometry{
		PaperWidth:        paperWidth,
		PaperHeight:       paperHeight,
		Margin:            margin,
		ContentWidth:      contentWidth,
		Scale:             scale,
		PageContentHeight: pageContentHeight,
	}, nil
}
