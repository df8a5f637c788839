package targa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bodgit/targa/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayTGA builds an uncompressed 8 bit grayscale TGA of w x h pixels, all
// set to level.
func grayTGA(t testing.TB, w, h int, level byte) []byte {
	t.Helper()

	b := new(bytes.Buffer)
	require.NoError(t, binary.Write(b, binary.LittleEndian, tga.Header{
		ImageType:  tga.UncompressedGrayscale,
		Width:      uint16(w),
		Height:     uint16(h),
		PixelDepth: 8,
	}))
	b.Write(bytes.Repeat([]byte{level}, w*h))
	return b.Bytes()
}

func newTestDB(t *testing.T) *TextureDB {
	t.Helper()

	db, err := NewTextureDB(filepath.Join(t.TempDir(), "textures.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func TestTextureDB(t *testing.T) {
	db := newTestDB(t)

	id, err := db.AddTexture("walls/brick", bytes.NewReader(grayTGA(t, 4, 2, 0x40)), tga.RGBA32)
	require.NoError(t, err)

	// Same file, same format, second name
	dup, err := db.AddTexture("walls/brick2", bytes.NewReader(grayTGA(t, 4, 2, 0x40)), tga.RGBA32)
	require.NoError(t, err)
	assert.NotEqual(t, id, dup)

	_, err = db.AddTexture("floor", bytes.NewReader(grayTGA(t, 1, 1, 0x80)), tga.RGB24)
	require.NoError(t, err)

	for _, name := range []string{"walls/brick", "walls/brick2"} {
		m, err := db.FindTextureByName(name)
		require.NoError(t, err)
		require.NotNil(t, m, name)
		assert.Equal(t, 4, m.Width)
		assert.Equal(t, 2, m.Height)
		assert.Equal(t, tga.RGBA32, m.Format)
		assert.Equal(t, bytes.Repeat([]byte{0x40, 0x40, 0x40, 0xff}, 8), m.Pix)
	}

	m, err := db.FindTextureByName("walls/missing")
	require.NoError(t, err)
	assert.Nil(t, m)

	textures, err := db.Textures()
	require.NoError(t, err)
	require.Len(t, textures, 3)
	assert.Equal(t, "floor", textures[0].Name)
	assert.Equal(t, tga.RGB24, textures[0].Format)
	assert.Equal(t, "walls/brick", textures[1].Name)
	assert.Len(t, textures[1].SHA1, 40)
	assert.Equal(t, textures[1].SHA1, textures[2].SHA1)

	var count int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM pixels").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestTextureDBReplaceName(t *testing.T) {
	db := newTestDB(t)

	id, err := db.AddTexture("sky", bytes.NewReader(grayTGA(t, 1, 1, 0x10)), tga.RGB24)
	require.NoError(t, err)

	again, err := db.AddTexture("sky", bytes.NewReader(grayTGA(t, 2, 1, 0x20)), tga.RGB24)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	m, err := db.FindTextureByName("sky")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, []byte{0x20, 0x20, 0x20, 0x20, 0x20, 0x20}, m.Pix)

	var count int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM pixels").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTextureDBConcurrentDuplicates(t *testing.T) {
	db := newTestDB(t)
	data := grayTGA(t, 2, 2, 0x60)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = db.AddTexture(fmt.Sprintf("copy%d", i), bytes.NewReader(data), tga.RGBA32)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	textures, err := db.Textures()
	require.NoError(t, err)
	assert.Len(t, textures, len(errs))
}

func TestTextureDBBadImage(t *testing.T) {
	db := newTestDB(t)

	_, err := db.AddTexture("broken", bytes.NewReader(grayTGA(t, 0, 1, 0)), tga.RGBA32)
	assert.ErrorIs(t, err, tga.ErrBadDimensions)

	textures, err := db.Textures()
	require.NoError(t, err)
	assert.Empty(t, textures)
}
