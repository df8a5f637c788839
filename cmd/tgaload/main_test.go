package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/targa/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "missing.tga")

	var loader tga.Loader
	_, err := loader.Load(file, tga.RGB24)
	require.Error(t, err)

	_, cause := os.Open(file)
	assert.Equal(t, file+": cannot open file: "+cause.Error(), loadError(file, &loader, err))

	// Kinds without a cause report just the message
	short := filepath.Join(t.TempDir(), "short.tga")
	require.NoError(t, os.WriteFile(short, []byte{0, 0, 2}, 0o644))

	_, err = loader.Load(short, tga.RGB24)
	require.Error(t, err)
	assert.Equal(t, short+": bad image header", loadError(short, &loader, err))
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat("rgba32")
	require.NoError(t, err)
	assert.Equal(t, tga.RGBA32, f)

	_, err = parseFormat("cmyk")
	assert.Error(t, err)
}
