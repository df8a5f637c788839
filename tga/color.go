package tga

// pixelFormat is how a stored pixel value unpacks into color channels. For
// color-mapped images it describes the color map entries rather than the
// stored indices.
type pixelFormat int

const (
	truecolor15 pixelFormat = iota
	truecolor16
	truecolor24
	truecolor32
	grayscale8
	grayscale16
)

// Channel scale factors from 5 and 6 bits to 8 bits. They are slightly below
// 255/31 and 255/63 so a full channel truncates to 254.
const (
	scale5 float32 = 8.2258
	scale6 float32 = 4.0476
)

const opaque uint32 = 0xff000000

// truecolorFormat picks the unpacking for a truecolor value of the given
// depth. A 32 bit pixel without alpha bits is 24 bit color and a 16 bit pixel
// with one alpha bit is 5-5-5.
func truecolorFormat(bits, alphaBits uint8) (pixelFormat, bool) {
	switch bits {
	case 32:
		if alphaBits == 0 {
			return truecolor24, true
		}
		return truecolor32, true
	case 24:
		return truecolor24, true
	case 16:
		if alphaBits == 1 {
			return truecolor15, true
		}
		return truecolor16, true
	case 15:
		return truecolor15, true
	}
	return 0, false
}

// sourceFormat derives the pixel format from the header. Any color map has
// already been validated.
func sourceFormat(h Header) (pixelFormat, error) {
	switch {
	case h.HasColorMap():
		pf, _ := truecolorFormat(h.ColorMapEntrySize, h.AlphaBits())
		return pf, nil
	case h.Paletted():
		return 0, &Error{Kind: BadColorMap}
	case h.Grayscale():
		switch {
		case h.PixelDepth <= 8:
			return grayscale8, nil
		case h.PixelDepth == 16:
			return grayscale16, nil
		}
		return 0, &Error{Kind: BadImageType}
	}

	if pf, ok := truecolorFormat(h.PixelDepth, h.AlphaBits()); ok {
		return pf, nil
	}
	return 0, &Error{Kind: BadImageType}
}

func scale(c uint32, bits uint) uint32 {
	if bits == 6 {
		return uint32(uint8(float32(c) * scale6))
	}
	return uint32(uint8(float32(c) * scale5))
}

// unpackPacked expands a 16 bit value with 5 bit red and blue and a green
// channel of greenBits into opaque BGR.
func unpackPacked(v uint32, greenBits uint) uint32 {
	b := v & 0x1f
	g := v >> 5 & (1<<greenBits - 1)
	r := v >> (5 + greenBits) & 0x1f
	return opaque | scale(r, 5)<<16 | scale(g, greenBits)<<8 | scale(b, 5)
}

// unpack returns v as 8 bit per channel BGRA, blue lowest, as stored in the
// file.
func unpack(v uint32, pf pixelFormat, alphaBits uint8) uint32 {
	switch pf {
	case truecolor15:
		return unpackPacked(v, 5)
	case truecolor16:
		return unpackPacked(v, 6)
	case truecolor24:
		return opaque | v&0x00ffffff
	case grayscale8:
		y := v & 0xff
		return opaque | y<<16 | y<<8 | y
	case grayscale16:
		y := v & 0xff
		a := opaque
		if alphaBits != 0 {
			a = (v >> 8 & 0xff) << 24
		}
		return a | y<<16 | y<<8 | y
	}
	return v
}

// swapRB turns BGRA into RGBA.
func swapRB(p uint32) uint32 {
	return p&0xff00ff00 | (p&0xff)<<16 | p>>16&0xff
}

func premultiply(p uint32) uint32 {
	a := p >> 24
	r := (p & 0xff) * a / 0xff
	g := (p >> 8 & 0xff) * a / 0xff
	b := (p >> 16 & 0xff) * a / 0xff
	return a<<24 | b<<16 | g<<8 | r
}

// normalize converts a raw pixel into premultiplied RGBA with red in the low
// byte. For RGB24 the alpha byte is cleared.
func normalize(v uint32, pf pixelFormat, alphaBits uint8, f Format) uint32 {
	p := premultiply(swapRB(unpack(v, pf, alphaBits)))
	if f == RGB24 {
		p &= 0x00ffffff
	}
	return p
}
