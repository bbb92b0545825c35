package pdftrace

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// Placement records one image draw operation from a page content
// stream: "q W 0 0 H X Y cm /Name Do Q". W and H are the rendered
// dimensions in points; X and Y position the image's lower-left corner
// in PDF user space (origin at the bottom-left of the page).
type Placement struct {
	Name          string
	Width, Height float64
	X, Y          float64
}

var placementRe = regexp.MustCompile(
	`q\s+([0-9.]+)\s+0(?:\.0+)?\s+0(?:\.0+)?\s+([0-9.]+)\s+(-?[0-9.]+)\s+(-?[0-9.]+)\s+cm\s+/(\S+)\s+Do\s+Q`)

// Placements extracts the image placements from a page's content
// stream, in stream order.
func (d *Document) Placements(page Dict) ([]Placement, error) {
	contentsRef, ok := page["Contents"]
	if !ok {
		return nil, nil
	}
	contents, err := d.resolve(contentsRef)
	if err != nil {
		return nil, err
	}

	streams := []Value{contents}
	if contents.Kind == KindArray {
		streams = contents.Arr
	}

	var data []byte
	for _, s := range streams {
		resolved, err := d.resolve(s)
		if err != nil {
			return nil, err
		}
		if resolved.Kind != KindStream {
			continue
		}
		decoded, err := decodeStream(resolved.Dict, resolved.Stream)
		if err != nil {
			return nil, fmt.Errorf("pdftrace: decoding content stream: %w", err)
		}
		data = append(data, decoded...)
		data = append(data, ' ')
	}

	var placements []Placement
	for _, m := range placementRe.FindAllSubmatch(data, -1) {
		w, _ := strconv.ParseFloat(string(m[1]), 64)
		h, _ := strconv.ParseFloat(string(m[2]), 64)
		x, _ := strconv.ParseFloat(string(m[3]), 64)
		y, _ := strconv.ParseFloat(string(m[4]), 64)
		placements = append(placements, Placement{
			Name:   string(m[5]),
			Width:  w,
			Height: h,
			X:      x,
			Y:      y,
		})
	}
	return placements, nil
}

// decodeStream decompresses a stream. Only FlateDecode (and unfiltered
// streams) occur in documents this module produces.
func decodeStream(dict Dict, raw []byte) ([]byte, error) {
	filter, ok := dict["Filter"]
	if !ok {
		return raw, nil
	}
	if filter.Kind != KindName || filter.Name != "FlateDecode" {
		return nil, fmt.Errorf("unsupported filter %v", filter.Name)
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		// Some producers omit the zlib wrapper; retry as raw deflate.
		fr := flate.NewReader(bytes.NewReader(raw))
		defer fr.Close()
		out, err := io.ReadAll(fr)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
