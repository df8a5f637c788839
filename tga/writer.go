package tga

// destination returns the coordinates of the i'th stored pixel, with (0, 0)
// the lower-left corner of the output.
//
// The lower-right case divides by the height rather than the width, as
// LibTarga always has. It only agrees with the other origins for square
// images.
func destination(i, w, h int, o Origin) (x, y int) {
	switch o {
	case LowerRight:
		return w - 1 - i%w, i / h
	case UpperLeft:
		return i % w, h - 1 - i/w
	case UpperRight:
		return w - 1 - i%w, h - 1 - i/w
	default:
		return i % w, i / w
	}
}

// pixelWriter stores normalized pixels into the output buffer.
type pixelWriter struct {
	pix    []byte
	w, h   int
	origin Origin
	format Format
}

func newPixelWriter(w, h int, o Origin, f Format) *pixelWriter {
	return &pixelWriter{
		pix:    make([]byte, w*h*int(f)),
		w:      w,
		h:      h,
		origin: o,
		format: f,
	}
}

// write stores p, red first, at the slot for the i'th stored pixel.
func (pw *pixelWriter) write(i int, p uint32) error {
	x, y := destination(i, pw.w, pw.h, pw.origin)
	if y >= pw.h {
		return &Error{Kind: BadDimensions}
	}

	off := (y*pw.w + x) * int(pw.format)
	for j := 0; j < int(pw.format); j++ {
		pw.pix[off+j] = byte(p >> (8 * uint(j)))
	}
	return nil
}
