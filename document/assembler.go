// Package document assembles composited bands into a paginated PDF.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/porticus-lab/go-report-pdf/paginate"
)

// Errors returned by the Assembler.
var (
	// ErrComplete is returned when a band is appended or Finalize is
	// called after the document has been finalized.
	ErrComplete = errors.New("document: assembler already finalized")

	// ErrEmpty is returned by Finalize when no band was ever appended.
	ErrEmpty = errors.New("document: no bands appended")
)

// referenceTime is embedded as the creation date when none is given, so
// that unchanged input produces byte-identical documents.
var referenceTime = time.Unix(0, 0).UTC()

// assembler states: empty until the first band, building until
// Finalize, complete afterwards.
type state int

const (
	stateEmpty state = iota
	stateBuilding
	stateComplete
)

// Assembler places composited bands onto successive pages of a PDF, one
// band per page, in append order. Every band is positioned at
// (margin, margin) and scaled so its rendered width equals the page
// content width.
//
// An Assembler serves a single document: after [Assembler.Finalize] it
// accepts no further bands. It is not safe for concurrent use.
type Assembler struct {
	geo   paginate.Geometry
	pdf   *gofpdf.Fpdf
	state state
	pages int
}

// NewAssembler creates an Assembler for pages of the given geometry.
// created is the creation timestamp embedded in the document; pass the
// zero time for reproducible output.
func NewAssembler(geo paginate.Geometry, created time.Time) *Assembler {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: geo.PaperWidth, Ht: geo.PaperHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	if created.IsZero() {
		created = referenceTime
	}
	pdf.SetCreationDate(created)

	return &Assembler{geo: geo, pdf: pdf}
}

// Append adds a new page holding the PNG-encoded band. heightPx is the
// band height in source raster pixels; the rendered height on the page
// is heightPx scaled by the geometry's scale factor.
func (a *Assembler) Append(band []byte, heightPx int) error {
	if a.state == stateComplete {
		return ErrComplete
	}
	if len(band) == 0 || heightPx <= 0 {
		return fmt.Errorf("document: empty band (%d bytes, %d px)", len(band), heightPx)
	}

	a.pdf.AddPage()
	a.pages++

	name := fmt.Sprintf("band%04d", a.pages)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	a.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(band))
	a.pdf.ImageOptions(name,
		a.geo.Margin, a.geo.Margin,
		a.geo.ContentWidth, float64(heightPx)*a.geo.Scale,
		false, opts, 0, "")

	if err := a.pdf.Error(); err != nil {
		return fmt.Errorf("document: placing band on page %d: %w", a.pages, err)
	}
	a.state = stateBuilding
	return nil
}

// Pages returns the number of pages appended so far.
func (a *Assembler) Pages() int {
	return a.pages
}

// Finalize serializes the document and marks the Assembler complete.
// No bands may be appended afterwards.
func (a *Assembler) Finalize() ([]byte, error) {
	switch a.state {
	case stateComplete:
		return nil, ErrComplete
	case stateEmpty:
		return nil, ErrEmpty
	}

	var buf bytes.Buffer
	if err := a.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: serializing: %w", err)
	}
	a.state = stateComplete
	return buf.Bytes(), nil
}
