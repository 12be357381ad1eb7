package images

import "testing"

func TestRasterizeSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50"/></svg>`)

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"intrinsic", 0, 0, 100, 50},
		{"scale_by_width", 200, 0, 200, 100},
		{"scale_by_height", 0, 200, 400, 200},
		{"fit_box", 150, 150, 150, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVG(svg, tt.w, tt.h)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Fatalf("unexpected bounds: %v", img.Bounds())
			}
		})
	}
}

func TestRasterizeSVG_Clamp(t *testing.T) {
	old := maxRasterDim
	maxRasterDim = 64
	t.Cleanup(func() { maxRasterDim = old })

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 500"></svg>`)
	img, err := RasterizeSVG(svg, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
}

func TestIsSVG(t *testing.T) {
	if !IsSVG([]byte(`<?xml version="1.0"?>\n<SVG xmlns="http://www.w3.org/2000/svg"/>`)) {
		t.Error("expected svg to be recognized")
	}
	if IsSVG([]byte{0x89, 0x50, 0x4E, 0x47}) {
		t.Error("png recognized as svg")
	}
}
