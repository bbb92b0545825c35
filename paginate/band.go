package paginate

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// CutBand copies the pixel region described by s out of the source
// raster into a new image. The source is never modified, and the band's
// pixels are byte-identical to the corresponding source region: no
// resampling happens here. Scaling to the page content width is applied
// only when the band is placed on a page.
func CutBand(src image.Image, s Slice) (*image.NRGBA, error) {
	b := src.Bounds()
	if s.Height <= 0 || s.Y < 0 || s.Y+s.Height > b.Dy() {
		return nil, fmt.Errorf("%w: band [%d,%d) outside raster height %d",
			ErrInvalidInput, s.Y, s.Y+s.Height, b.Dy())
	}

	band := image.NewNRGBA(image.Rect(0, 0, b.Dx(), s.Height))
	region := image.Rect(b.Min.X, b.Min.Y+s.Y, b.Max.X, b.Min.Y+s.Y+s.Height)
	draw.Copy(band, image.Point{}, src, region, draw.Src, nil)
	return band, nil
}

// EncodeBand encodes a band as PNG, the format the document assembler
// embeds directly.
func EncodeBand(band image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, band); err != nil {
		return nil, fmt.Errorf("paginate: encoding band: %w", err)
	}
	return buf.Bytes(), nil
}
