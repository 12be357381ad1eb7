package images

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func TestSetJFIFDensity_AddsMarker(t *testing.T) {
	// minimal JPEG without APP0
	data := []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04}

	out, added, err := SetJFIFDensity(data, DpiPxPerInch, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected marker to be added")
	}
	if out[0] != 0xFF || out[1] != 0xD8 {
		t.Fatal("expected SOI marker preserved")
	}
	if !bytes.Equal(out[2:4], []byte{0xFF, 0xE0}) {
		t.Fatal("expected JFIF APP0 marker at position 2-3")
	}
	if !bytes.Equal(out[6:11], []byte("JFIF\x00")) {
		t.Fatalf("expected JFIF identifier, got %q", out[6:11])
	}
	if out[13] != byte(DpiPxPerInch) {
		t.Errorf("units = %d, want %d", out[13], DpiPxPerInch)
	}
	if x := binary.BigEndian.Uint16(out[14:16]); x != 300 {
		t.Errorf("x density = %d, want 300", x)
	}
	if !bytes.Equal(out[20:], data[2:]) {
		t.Error("expected original segments to follow APP0")
	}
}

func TestSetJFIFDensity_AlreadyPresent(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	out, added, err := SetJFIFDensity(data, DpiPxPerInch, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Fatal("expected no marker addition")
	}
	if !bytes.Equal(out, data) {
		t.Fatal("expected same bytes")
	}
}

func TestSetJFIFDensity_Errors(t *testing.T) {
	if _, _, err := SetJFIFDensity([]byte{0xFF}, DpiPxPerInch, 1, 1); err == nil {
		t.Error("expected error for short data")
	}
	if _, _, err := SetJFIFDensity([]byte{0x89, 0x50, 0x4E, 0x47}, DpiPxPerInch, 1, 1); err == nil {
		t.Error("expected error for non jpeg data")
	}
}

func TestEncodeJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := range 8 {
		img.Set(x, 1, color.RGBA{R: 200, A: 255})
	}

	data, err := EncodeJPEG(img, 80, 150)
	if err != nil {
		t.Fatalf("EncodeJPEG() error: %v", err)
	}
	if !bytes.Equal(data[2:4], []byte{0xFF, 0xE0}) {
		t.Fatal("expected APP0 segment")
	}
	if x := binary.BigEndian.Uint16(data[14:16]); x != 150 {
		t.Errorf("x density = %d, want 150", x)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not a valid jpeg: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 4 {
		t.Errorf("size = %dx%d, want 8x4", cfg.Width, cfg.Height)
	}
}
