package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kernel-convolution/internal/algorithms"
)

func TestParseKernelForm(t *testing.T) {
	spec, err := ParseKernelForm("gaussian", " 7 ", "1.5", "")
	require.NoError(t, err)
	assert.Equal(t, algorithms.GaussianSpec{Size: 7, Sigma: 1.5}, spec)

	spec, err = ParseKernelForm("average", "3", "not used", "")
	require.NoError(t, err)
	assert.Equal(t, algorithms.AverageSpec{Size: 3}, spec)

	spec, err = ParseKernelForm("custom", "", "", "sobel_y")
	require.NoError(t, err)
	assert.Equal(t, "sobel_y", spec.(algorithms.CustomSpec).Name)

	_, err = ParseKernelForm("gaussian", "five", "1", "")
	assert.ErrorIs(t, err, algorithms.ErrInvalidKernelSize)

	_, err = ParseKernelForm("gaussian", "5", "wide", "")
	assert.ErrorIs(t, err, algorithms.ErrInvalidParameter)

	_, err = ParseKernelForm("", "5", "1", "")
	assert.ErrorIs(t, err, algorithms.ErrUnsupportedKernelType)
}
