package tga

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Header is the fixed 18 byte TGA file header. The field order and widths
// match the file, so it can be read with encoding/binary directly.
type Header struct {
	IDLength          uint8
	ColorMapType      uint8
	ImageType         ImageType
	ColorMapFirst     uint16
	ColorMapLength    uint16
	ColorMapEntrySize uint8
	XOrigin           uint16
	YOrigin           uint16
	Width             uint16
	Height            uint16
	PixelDepth        uint8
	Descriptor        uint8
}

// AlphaBits returns the number of attribute bits per pixel.
func (h Header) AlphaBits() uint8 {
	return h.Descriptor & alphaBitsMask
}

// Origin returns the corner the first stored pixel belongs to.
func (h Header) Origin() Origin {
	return Origin((h.Descriptor & originMask) >> originShift)
}

// HasColorMap reports whether a color map follows the image identifier.
func (h Header) HasColorMap() bool {
	return h.ColorMapType != 0
}

// Compressed reports whether the pixel data is run-length encoded.
func (h Header) Compressed() bool {
	return h.ImageType == RLEPaletted || h.ImageType == RLETruecolor || h.ImageType == RLEGrayscale
}

// Grayscale reports whether the image type is one of the grayscale types.
func (h Header) Grayscale() bool {
	return h.ImageType == UncompressedGrayscale || h.ImageType == RLEGrayscale
}

// Paletted reports whether the image type is one of the color-mapped types.
func (h Header) Paletted() bool {
	return h.ImageType == UncompressedPaletted || h.ImageType == RLEPaletted
}

// Pixels returns width * height.
func (h Header) Pixels() int {
	return int(h.Width) * int(h.Height)
}

// BytesPerPixel returns the number of bytes each stored pixel (or color map
// index) occupies, never less than one.
func (h Header) BytesPerPixel() int {
	if n := bytesFor(h.PixelDepth); n > 0 {
		return n
	}
	return 1
}

// bytesFor rounds a bit count up to whole bytes.
func bytesFor(bits uint8) int {
	return (int(bits) + 7) >> 3
}

// ReadHeader reads the 18 byte header from r. A short header is reported as
// BadHeader.
func ReadHeader(r io.Reader) (Header, error) {
	var b [headerLength]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Header{}, readError(err, BadHeader)
	}

	var h Header
	if err := binary.Read(bytes.NewReader(b[:]), binary.LittleEndian, &h); err != nil {
		return Header{}, &Error{Kind: BadHeader, Err: err}
	}
	return h, nil
}

// validateDimensions runs before the image identifier is skipped and
// validateType after it.
func (h Header) validateDimensions() error {
	if h.Pixels() == 0 {
		return &Error{Kind: BadDimensions}
	}
	return nil
}

func (h Header) validateType() error {
	if h.ImageType == NoData {
		return &Error{Kind: NoDataImage}
	}
	return nil
}
