package paginate

import "fmt"

// Slice describes one horizontal band of the source raster.
type Slice struct {
	// Y is the band's offset from the top of the source raster, in pixels.
	Y int
	// Height is the band height in pixels. Always positive.
	Height int
}

// Partition splits a raster height into an ordered, gap-free,
// non-overlapping sequence of bands of at most pageContentHeight pixels.
// Every band except the last is exactly pageContentHeight tall; the last
// holds the remainder. The band heights sum to height exactly, and the
// band count is ceil(height / pageContentHeight).
func Partition(height, pageContentHeight int) ([]Slice, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: raster height %d", ErrInvalidInput, height)
	}
	if pageContentHeight <= 0 {
		return nil, fmt.Errorf("%w: page content height %d", ErrInvalidInput, pageContentHeight)
	}

	slices := make([]Slice, 0, (height+pageContentHeight-1)/pageContentHeight)
	for y := 0; y < height; {
		h := pageContentHeight
		if rest := height - y; rest < h {
			h = rest
		}
		slices = append(slices, Slice{Y: y, Height: h})
		y += h
	}
	return slices, nil
}
