package io

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kernel-convolution/internal/algorithms"
)

func gradient(height, width int) algorithms.Grid {
	g := algorithms.NewGrid(height, width)
	for y := range g {
		for x := range g[y] {
			g[y][x] = uint8((x*31 + y*17) % 256)
		}
	}
	return g
}

func TestStdCodecLosslessFormats(t *testing.T) {
	dir := t.TempDir()
	codec := NewStdCodec()
	g := gradient(9, 14)

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		path := filepath.Join(dir, "out"+ext)
		require.NoError(t, codec.Encode(path, g), ext)

		got, err := codec.DecodeGrayscale(path)
		require.NoError(t, err, ext)
		assert.True(t, g.Equal(got), ext)
	}
}

func TestStdCodecJPEGShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	codec := &StdCodec{JPEGQuality: 95}
	require.NoError(t, codec.Encode(path, algorithms.NewFilledGrid(8, 16, 128)))

	got, err := codec.DecodeGrayscale(path)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Height())
	assert.Equal(t, 16, got.Width())
	assert.InDelta(t, 128, int(got[4][8]), 2)
}

func TestStdCodecErrors(t *testing.T) {
	dir := t.TempDir()
	codec := NewStdCodec()

	_, err := codec.DecodeGrayscale(filepath.Join(dir, "missing.png"))
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))
	_, err = codec.DecodeGrayscale(corrupt)
	assert.True(t, errors.As(err, &de))

	err = codec.Encode(filepath.Join(dir, "out.xyz"), gradient(2, 2))
	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = codec.Encode(filepath.Join(dir, "out.webp"), gradient(2, 2))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = codec.Encode(filepath.Join(dir, "no", "such", "dir.png"), gradient(2, 2))
	assert.True(t, errors.As(err, &ee))
}

func TestImageLoader(t *testing.T) {
	dir := t.TempDir()
	loader := NewImageLoader(nil, nil)
	g := gradient(5, 5)

	path := filepath.Join(dir, "img.png")
	require.NoError(t, loader.SaveImage(g, path))
	got, err := loader.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	_, err = loader.LoadImage(filepath.Join(dir, "img.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = loader.SaveImage(algorithms.Grid{}, path)
	assert.ErrorIs(t, err, algorithms.ErrEmptyImage)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/a/b/Photo.JPG")
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, f)

	_, err = FormatFromPath("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
