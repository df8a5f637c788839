package tga

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	tables := []struct {
		kind ErrorKind
		want string
	}{
		{None, "no error"},
		{BadHeader, "bad image header"},
		{OpenFails, "cannot open file"},
		{BadFormat, "bad format argument"},
		{UnexpectedEOF, "unexpected end-of-file"},
		{NoDataImage, "image contains no data"},
		{ColormapForGray, "found colormap for a grayscale image"},
		{BadColorMapEntrySize, "unsupported colormap entry size"},
		{BadColorMap, "bad colormap"},
		{ReadFails, "cannot read from file"},
		{BadImageType, "unknown image type"},
		{BadDimensions, "image has size 0 width or height (or both)"},
		{ErrorKind(12), "unknown error"},
		{ErrorKind(-1), "unknown error"},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, ErrorMessage(table.kind))
	}
}

func TestErrorIs(t *testing.T) {
	cause := errors.New("disk on fire")
	err := fmt.Errorf("loading wall.tga: %w", &Error{Kind: ReadFails, Err: cause})

	assert.True(t, errors.Is(err, ErrReadFails))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrBadHeader))
	assert.Equal(t, ReadFails, KindOf(err))
	assert.Equal(t, "loading wall.tga: tga: cannot read from file: disk on fire", err.Error())

	assert.Equal(t, None, KindOf(nil))
	assert.Equal(t, ReadFails, KindOf(cause))
	assert.Equal(t, "tga: bad colormap", ErrBadColorMap.Error())
}

func TestErrorsAreNotShared(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil), Format(7))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.NotSame(t, ErrBadFormat, e)
	e.Err = errors.New("changed")

	assert.Nil(t, ErrBadFormat.Err)
	assert.True(t, errors.Is(err, ErrBadFormat))
}
