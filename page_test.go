package reportpdf

import "testing"

func TestDefaultExportConfig(t *testing.T) {
	d := DefaultExportConfig()
	if d.Size != A4 {
		t.Errorf("default size = %v, want A4", d.Size)
	}
	if d.Margin != DefaultMargin {
		t.Errorf("default margin = %v, want %v", d.Margin, DefaultMargin)
	}
	if d.Selector != "body" {
		t.Errorf("default selector = %q, want body", d.Selector)
	}
	if d.DeviceScale != 1.0 {
		t.Errorf("default device scale = %v, want 1.0", d.DeviceScale)
	}
	if d.Filename != "events-overview.pdf" {
		t.Errorf("default filename = %q, want events-overview.pdf", d.Filename)
	}
}

func TestExportConfigResolved_Nil(t *testing.T) {
	var cfg *ExportConfig
	r := cfg.resolved()
	d := DefaultExportConfig()
	if r.Size != d.Size || r.Margin != d.Margin || r.Selector != d.Selector ||
		r.DeviceScale != d.DeviceScale || r.Filename != d.Filename {
		t.Errorf("nil config resolved to %+v, want defaults %+v", r, d)
	}
}

func TestExportConfigResolved_PartialOverride(t *testing.T) {
	cfg := &ExportConfig{
		Selector: "#events-overview",
		Exclude:  []string{".placeholder"},
	}
	r := cfg.resolved()
	if r.Selector != "#events-overview" {
		t.Errorf("selector = %q, want #events-overview", r.Selector)
	}
	if len(r.Exclude) != 1 || r.Exclude[0] != ".placeholder" {
		t.Errorf("exclude = %v, want [.placeholder]", r.Exclude)
	}
	if r.Size != A4 {
		t.Errorf("size = %v, want default A4", r.Size)
	}
	if r.Margin != DefaultMargin {
		t.Errorf("margin = %v, want default %v", r.Margin, DefaultMargin)
	}
	if r.Filename != DefaultFilename {
		t.Errorf("filename = %q, want default %q", r.Filename, DefaultFilename)
	}
}

func TestExportConfigResolved_NegativeValues(t *testing.T) {
	cfg := &ExportConfig{Margin: -5, DeviceScale: -1}
	r := cfg.resolved()
	if r.Margin != DefaultMargin {
		t.Errorf("negative margin resolved to %v, want default", r.Margin)
	}
	if r.DeviceScale != 1.0 {
		t.Errorf("negative device scale resolved to %v, want 1.0", r.DeviceScale)
	}
}

func TestPaperSizes_Portrait(t *testing.T) {
	for name, s := range map[string]PageSize{
		"A3": A3, "A4": A4, "A5": A5, "Letter": Letter, "Legal": Legal, "Tabloid": Tabloid,
	} {
		if s.Width <= 0 || s.Height <= 0 {
			t.Errorf("%s has non-positive dimensions: %+v", name, s)
		}
		if s.Width >= s.Height {
			t.Errorf("%s is not portrait: %+v", name, s)
		}
	}
}
