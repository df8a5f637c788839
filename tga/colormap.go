package tga

import (
	"io"
)

// colorMap holds the palette entries exactly as stored, each entry occupying
// bytesPerEntry little-endian bytes.
type colorMap struct {
	entries       []byte
	bytesPerEntry int
	bits          uint8
	length        int
}

func validEntrySize(bits uint8) bool {
	switch bits {
	case 15, 16, 24, 32:
		return true
	}
	return false
}

func skip(r io.Reader, n int64, kind ErrorKind) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return readError(err, kind)
	}
	return nil
}

// readColorMap loads the color map described by h. Entries before
// ColorMapFirst are skipped once, ahead of the table.
func readColorMap(r io.Reader, h Header) (*colorMap, error) {
	if h.Grayscale() {
		return nil, &Error{Kind: ColormapForGray}
	}

	if !validEntrySize(h.ColorMapEntrySize) {
		return nil, &Error{Kind: BadColorMapEntrySize}
	}

	cm := &colorMap{
		bytesPerEntry: bytesFor(h.ColorMapEntrySize),
		bits:          h.ColorMapEntrySize,
		length:        int(h.ColorMapLength),
	}

	if err := skip(r, int64(h.ColorMapFirst)*int64(cm.bytesPerEntry), BadColorMap); err != nil {
		return nil, err
	}

	cm.entries = make([]byte, cm.bytesPerEntry*cm.length)
	if _, err := io.ReadFull(r, cm.entries); err != nil {
		return nil, readError(err, BadColorMap)
	}

	return cm, nil
}

// lookup returns the stored color for index i.
func (cm *colorMap) lookup(i uint32) (uint32, error) {
	if int64(i) >= int64(cm.length) {
		return 0, &Error{Kind: BadColorMap}
	}
	off := int(i) * cm.bytesPerEntry
	return littleEndian(cm.entries[off : off+cm.bytesPerEntry]), nil
}

// littleEndian assembles up to four bytes into a value, first byte lowest.
func littleEndian(b []byte) uint32 {
	var v uint32
	for i, c := range b {
		v |= uint32(c) << (8 * uint(i))
	}
	return v
}
