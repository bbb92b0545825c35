package paginate

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testRaster builds a raster whose pixel values encode their coordinates,
// so any copy mistake shows up as a value mismatch.
func testRaster(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func TestCutBand_PixelIdentity(t *testing.T) {
	src := testRaster(16, 40)
	before := append([]byte(nil), src.Pix...)

	slices, err := Partition(40, 16)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range slices {
		band, err := CutBand(src, s)
		if err != nil {
			t.Fatalf("CutBand(%+v): %v", s, err)
		}
		if got := band.Bounds(); got.Dx() != 16 || got.Dy() != s.Height {
			t.Fatalf("band bounds = %v, want 16x%d", got, s.Height)
		}
		for y := 0; y < s.Height; y++ {
			for x := 0; x < 16; x++ {
				if got, want := band.NRGBAAt(x, y), src.NRGBAAt(x, s.Y+y); got != want {
					t.Fatalf("band(%d,%d) = %v, want source(%d,%d) = %v", x, y, got, x, s.Y+y, want)
				}
			}
		}
	}

	if !bytes.Equal(before, src.Pix) {
		t.Error("CutBand mutated the source raster")
	}
}

func TestCutBand_NonZeroOrigin(t *testing.T) {
	// A subimage with a shifted Min must still cut the right region.
	base := testRaster(20, 20)
	src := base.SubImage(image.Rect(4, 4, 20, 20)).(*image.NRGBA)

	band, err := CutBand(src, Slice{Y: 2, Height: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := band.NRGBAAt(0, 0), base.NRGBAAt(4, 6); got != want {
		t.Errorf("band(0,0) = %v, want base(4,6) = %v", got, want)
	}
}

func TestCutBand_OutOfRange(t *testing.T) {
	src := testRaster(8, 10)
	tests := []struct {
		name string
		s    Slice
	}{
		{"negative offset", Slice{Y: -1, Height: 5}},
		{"zero height", Slice{Y: 0, Height: 0}},
		{"past bottom", Slice{Y: 8, Height: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CutBand(src, tt.s); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CutBand = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestEncodeBand_RoundTrip(t *testing.T) {
	src := testRaster(12, 7)
	data, err := EncodeBand(src)
	if err != nil {
		t.Fatalf("EncodeBand: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding band: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
		t.Errorf("decoded bounds = %v, want 12x7", b)
	}
}

func TestEncodeBand_Deterministic(t *testing.T) {
	src := testRaster(12, 7)
	a, err := EncodeBand(src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeBand(src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("EncodeBand output differs across identical inputs")
	}
}

func TestEncodeBand_ZeroArea(t *testing.T) {
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, err := EncodeBand(empty); err == nil {
		t.Error("EncodeBand accepted a zero-area image")
	}
}
