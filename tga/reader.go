package tga

import (
	"io"
)

const maxBytesPerPixel = 4

// pixelReader yields one raw pixel value per call to next, resolving color
// map indices and run-length packets. It cannot be rewound.
type pixelReader struct {
	r        io.Reader
	cm       *colorMap
	rle      bool
	size     int
	tmp      [maxBytesPerPixel]byte
	packet   int    // pixels left in the current packet
	run      bool   // current packet repeats value
	value    uint32 // repeated value of a run packet
	finished bool   // no more packet headers could be read
}

func newPixelReader(r io.Reader, h Header, cm *colorMap) (*pixelReader, error) {
	if !h.ImageType.valid() {
		return nil, &Error{Kind: BadImageType}
	}

	size := h.BytesPerPixel()
	if size > maxBytesPerPixel {
		return nil, &Error{Kind: BadImageType}
	}

	return &pixelReader{
		r:    r,
		cm:   cm,
		rle:  h.Compressed(),
		size: size,
	}, nil
}

// readValue reads one stored pixel and resolves it through the color map.
// Once the packet stream has ended the stored value is zero.
func (pr *pixelReader) readValue() (uint32, error) {
	var v uint32
	if !pr.finished {
		b := pr.tmp[:pr.size]
		if _, err := io.ReadFull(pr.r, b); err != nil {
			return 0, readError(err, UnexpectedEOF)
		}
		v = littleEndian(b)
	}

	if pr.cm != nil {
		return pr.cm.lookup(v)
	}
	return v, nil
}

// readPacket starts the next run-length packet. A missing packet header is
// treated as a raw packet of one pixel and every following pixel reads as
// index or value zero.
func (pr *pixelReader) readPacket() error {
	var header byte
	if _, err := io.ReadFull(pr.r, pr.tmp[:1]); err != nil {
		if err != io.EOF {
			return readError(err, UnexpectedEOF)
		}
		pr.finished = true
		header = 1
	} else {
		header = pr.tmp[0]
	}

	pr.packet = int(header&packetCountMax) + 1
	pr.run = header&packetRunFlag != 0

	if pr.run {
		v, err := pr.readValue()
		if err != nil {
			return err
		}
		pr.value = v
	}
	return nil
}

func (pr *pixelReader) next() (uint32, error) {
	if !pr.rle {
		return pr.readValue()
	}

	if pr.packet == 0 {
		if err := pr.readPacket(); err != nil {
			return 0, err
		}
	}
	pr.packet--

	if pr.run {
		return pr.value, nil
	}
	return pr.readValue()
}
