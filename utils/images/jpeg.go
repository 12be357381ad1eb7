package images

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

type DpiType uint8

const (
	DpiNoUnits DpiType = iota
	DpiPxPerInch
	DpiPxPerSm
)

var (
	app0Marker = []byte{0xFF, 0xE0}
	// "JFIF\0" + version 1.02
	jfifHeader = []byte{0x4A, 0x46, 0x49, 0x46, 0x00, 0x01, 0x02}
)

// SetJFIFDensity makes sure JPEG data starts with JFIF APP0 segment carrying
// requested density. Go encoder never writes APP0 so without it office
// renderers fall back to 72 dpi and print backgrounds at the wrong size.
// Returns true when segment was inserted.
func SetJFIFDensity(data []byte, dpit DpiType, xdensity, ydensity uint16) ([]byte, bool, error) {
	if len(data) < 4 {
		return nil, false, errors.New("jpeg too small")
	}
	if data[0] != 0xFF || data[1] != 0xD8 {
		return nil, false, errors.New("not a jpeg")
	}
	if bytes.Equal(data[2:4], app0Marker) {
		return data, false, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(data)+18))
	buf.Write(data[:2])
	buf.Write(app0Marker)
	_ = binary.Write(buf, binary.BigEndian, uint16(0x10)) // segment length
	buf.Write(jfifHeader)
	_ = binary.Write(buf, binary.BigEndian, uint8(dpit))
	_ = binary.Write(buf, binary.BigEndian, xdensity)
	_ = binary.Write(buf, binary.BigEndian, ydensity)
	_ = binary.Write(buf, binary.BigEndian, uint16(0)) // no thumbnail
	buf.Write(data[2:])
	return buf.Bytes(), true, nil
}

// EncodeJPEG encodes image with given quality and stamps dpi into JFIF
// header. Zero dpi leaves density unspecified.
func EncodeJPEG(img image.Image, quality, dpi int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	if dpi <= 0 {
		out, _, err := SetJFIFDensity(buf.Bytes(), DpiNoUnits, 1, 1)
		return out, err
	}
	out, _, err := SetJFIFDensity(buf.Bytes(), DpiPxPerInch, uint16(dpi), uint16(dpi))
	return out, err
}
