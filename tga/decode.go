package tga

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"os"
	"sync"
)

// Image is a decoded TGA image. Pix holds Width * Height pixels of Format
// bytes each, premultiplied, starting at the lower-left corner and running
// left to right then bottom to top.
type Image struct {
	Pix    []byte
	Width  int
	Height int
	Format Format
}

// RGBA returns a copy of m as an *image.RGBA with the usual top-down row
// order. RGB24 pixels become fully opaque.
func (m *Image) RGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	n := int(m.Format)
	for y := 0; y < m.Height; y++ {
		src := m.Pix[y*m.Width*n : (y+1)*m.Width*n]
		row := dst.Pix[(m.Height-1-y)*dst.Stride:]
		for x := 0; x < m.Width; x++ {
			s, d := src[x*n:x*n+n], row[x*4:x*4+4]
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xff
			if n == 4 {
				d[3] = s[3]
			}
		}
	}
	return dst
}

type decoder struct {
	r io.Reader

	header Header
	cmap   *colorMap
	format pixelFormat

	image *Image
}

func (d *decoder) decode(r io.Reader, f Format, configOnly bool) error {
	d.r = bufio.NewReader(r)

	var err error
	if d.header, err = ReadHeader(d.r); err != nil {
		return err
	}
	h := d.header

	if err := h.validateDimensions(); err != nil {
		return err
	}

	if err := skip(d.r, int64(h.IDLength), UnexpectedEOF); err != nil {
		return err
	}

	if err := h.validateType(); err != nil {
		return err
	}

	if h.HasColorMap() {
		if d.cmap, err = readColorMap(d.r, h); err != nil {
			return err
		}
	}

	pr, err := newPixelReader(d.r, h, d.cmap)
	if err != nil {
		return err
	}

	if d.format, err = sourceFormat(h); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	w, ht := int(h.Width), int(h.Height)
	pw := newPixelWriter(w, ht, h.Origin(), f)
	alphaBits := h.AlphaBits()

	for i, n := 0, h.Pixels(); i < n; i++ {
		v, err := pr.next()
		if err != nil {
			return err
		}
		if err := pw.write(i, normalize(v, d.format, alphaBits, f)); err != nil {
			return err
		}
	}

	d.image = &Image{
		Pix:    pw.pix,
		Width:  w,
		Height: ht,
		Format: f,
	}

	return nil
}

// Decode reads a TGA image from r and converts it to f. On failure no image
// is returned and the error is an *Error.
func Decode(r io.Reader, f Format) (*Image, error) {
	if !f.valid() {
		return nil, &Error{Kind: BadFormat}
	}

	var d decoder
	if err := d.decode(r, f, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeFile is Decode for the named file.
func DecodeFile(name string, f Format) (*Image, error) {
	if !f.valid() {
		return nil, &Error{Kind: BadFormat}
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, &Error{Kind: OpenFails, Err: err}
	}
	defer file.Close()

	return Decode(file, f)
}

// DecodeConfig returns the color model and dimensions of a TGA image without
// decoding the pixel data. The header and color map are still validated.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, RGBA32, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(d.header.Width),
		Height:     int(d.header.Height),
	}, nil
}

// Loader decodes files and remembers the kind of the last failure, for
// callers that report errors away from the call site. It is safe for
// concurrent use, although concurrent failures overwrite each other.
type Loader struct {
	mu   sync.Mutex
	last ErrorKind
}

// Load decodes the named file, recording the error kind on failure. A
// successful load leaves the previous error in place.
func (l *Loader) Load(name string, f Format) (*Image, error) {
	m, err := DecodeFile(name, f)
	if err != nil {
		l.mu.Lock()
		l.last = KindOf(err)
		l.mu.Unlock()
	}
	return m, err
}

// LastError returns the kind of the most recent failed Load.
func (l *Loader) LastError() ErrorKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}
