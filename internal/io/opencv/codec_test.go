package opencv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kernel-convolution/internal/algorithms"
	imageio "kernel-convolution/internal/io"
)

func TestGridMatRoundTrip(t *testing.T) {
	g := algorithms.Grid{{0, 64, 128}, {192, 255, 1}}
	mat, err := GridToMat(g)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 2, mat.Rows())
	assert.Equal(t, 3, mat.Cols())

	back, err := MatToGrid(mat)
	require.NoError(t, err)
	assert.Equal(t, g, back)
}

func TestCodecFiles(t *testing.T) {
	dir := t.TempDir()
	codec := NewCodec()
	g := algorithms.NewFilledGrid(6, 4, 77)

	path := filepath.Join(dir, "out.png")
	require.NoError(t, codec.Encode(path, g))
	got, err := codec.DecodeGrayscale(path)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	_, err = codec.DecodeGrayscale(filepath.Join(dir, "missing.png"))
	var de *imageio.DecodeError
	assert.True(t, errors.As(err, &de))

	err = codec.Encode(filepath.Join(dir, "out.xyz"), g)
	assert.ErrorIs(t, err, imageio.ErrUnsupportedFormat)
}
