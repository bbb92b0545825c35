package paginate

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestCompute_Invariants(t *testing.T) {
	tests := []struct {
		name        string
		rasterWidth int
		paperW      float64
		paperH      float64
		margin      float64
	}{
		{"a4 wide raster", 1152, 595.28, 841.89, 10},
		{"a4 narrow raster", 320, 595.28, 841.89, 10},
		{"letter", 800, 612, 792, 10},
		{"large margin", 1000, 595.28, 841.89, 72},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo, err := Compute(tt.rasterWidth, tt.paperW, tt.paperH, tt.margin)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if !almostEqual(geo.ContentWidth, tt.paperW-2*tt.margin, 1e-9) {
				t.Errorf("ContentWidth = %v, want %v", geo.ContentWidth, tt.paperW-2*tt.margin)
			}
			if !almostEqual(geo.Scale, geo.ContentWidth/float64(tt.rasterWidth), 1e-9) {
				t.Errorf("Scale = %v, want contentWidth/rasterWidth", geo.Scale)
			}
			if geo.Scale <= 0 {
				t.Errorf("Scale = %v, want > 0", geo.Scale)
			}
			want := int(math.Floor(tt.paperH / geo.Scale))
			if geo.PageContentHeight != want {
				t.Errorf("PageContentHeight = %d, want %d", geo.PageContentHeight, want)
			}
			if geo.PageContentHeight <= 0 {
				t.Errorf("PageContentHeight = %d, want > 0", geo.PageContentHeight)
			}
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	a, err := Compute(1152, 595.28, 841.89, 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(1152, 595.28, 841.89, 10)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("Compute not deterministic: %+v vs %+v", a, b)
	}
}

func TestCompute_InvalidInputs(t *testing.T) {
	tests := []struct {
		name        string
		rasterWidth int
		paperW      float64
		paperH      float64
		margin      float64
	}{
		{"zero raster width", 0, 595.28, 841.89, 10},
		{"negative raster width", -5, 595.28, 841.89, 10},
		{"zero paper width", 800, 0, 841.89, 10},
		{"zero paper height", 800, 595.28, 0, 10},
		{"zero margin", 800, 595.28, 841.89, 0},
		{"negative margin", 800, 595.28, 841.89, -1},
		{"margin swallows page", 800, 595.28, 841.89, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.rasterWidth, tt.paperW, tt.paperH, tt.margin)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Compute = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}
