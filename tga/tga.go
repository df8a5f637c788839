/*
Package tga implements a Truevision TGA (Targa) image decoder.

The file starts with an 18 byte little-endian header, followed by an optional
image identifier of up to 255 bytes, an optional color map and finally the
pixel data. Pixels are stored either literally or as run-length packets and
are 15, 16, 24 or 32 bits of BGR(A) color, an index into the color map, or an
8 bit gray level.

Decoded images are flattened to packed RGB or RGBA bytes with alpha
premultiplied. The first pixel of the buffer is the lower-left corner of the
image, which is what texture upload expects.
*/
package tga

const (
	headerLength = 18

	// Image descriptor byte
	alphaBitsMask = 0x0f
	originMask    = 0x30
	originShift   = 4

	// Run-length packet header
	packetRunFlag  = 0x80
	packetCountMax = 0x7f
)

// Format is the requested output layout. Its value is the number of bytes
// written per pixel.
type Format int

const (
	// RGB24 writes three bytes per pixel, alpha is discarded.
	RGB24 Format = 3
	// RGBA32 writes four bytes per pixel.
	RGBA32 Format = 4
)

func (f Format) valid() bool {
	return f == RGB24 || f == RGBA32
}

func (f Format) String() string {
	switch f {
	case RGB24:
		return "rgb24"
	case RGBA32:
		return "rgba32"
	default:
		return "unknown"
	}
}

// ImageType is the image type code stored at offset 2 of the header.
type ImageType uint8

// Image type codes.
const (
	NoData                ImageType = 0
	UncompressedPaletted  ImageType = 1
	UncompressedTruecolor ImageType = 2
	UncompressedGrayscale ImageType = 3
	RLEPaletted           ImageType = 9
	RLETruecolor          ImageType = 10
	RLEGrayscale          ImageType = 11
)

func (t ImageType) valid() bool {
	switch t {
	case UncompressedPaletted, UncompressedTruecolor, UncompressedGrayscale,
		RLEPaletted, RLETruecolor, RLEGrayscale:
		return true
	}
	return false
}

// Origin is the corner of the image the first stored pixel belongs to.
type Origin uint8

// Scan origins, bits 4 and 5 of the image descriptor.
const (
	LowerLeft Origin = iota
	LowerRight
	UpperLeft
	UpperRight
)

func (o Origin) String() string {
	switch o {
	case LowerLeft:
		return "lower-left"
	case LowerRight:
		return "lower-right"
	case UpperLeft:
		return "upper-left"
	default:
		return "upper-right"
	}
}
