package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kernel-convolution/internal/algorithms"
)

func TestApplyKernelNotReady(t *testing.T) {
	s := NewImageSession(nil)
	assert.Equal(t, StateEmpty, s.State())

	_, err := s.ApplyKernel()
	var nre *NotReadyError
	require.True(t, errors.As(err, &nre))
	assert.Equal(t, NoImageLoaded, nre.Reason)
	assert.ErrorIs(t, err, ErrNotReady)

	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(4, 4, 10)))
	assert.Equal(t, StateImageLoaded, s.State())

	_, err = s.ApplyKernel()
	require.True(t, errors.As(err, &nre))
	assert.Equal(t, NoKernelConfigured, nre.Reason)
}

func TestKernelBeforeImage(t *testing.T) {
	s := NewImageSession(nil)
	require.NoError(t, s.SetKernel(algorithms.AverageSpec{Size: 3}))
	assert.Equal(t, StateKernelConfigured, s.State())

	_, err := s.ApplyKernel()
	var nre *NotReadyError
	require.True(t, errors.As(err, &nre))
	assert.Equal(t, NoImageLoaded, nre.Reason)

	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(5, 5, 100)))
	assert.Equal(t, StateReady, s.State())
}

func TestApplyKernelScenario(t *testing.T) {
	s := NewImageSession(nil)
	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(5, 5, 100)))
	require.NoError(t, s.SetKernel(algorithms.AverageSpec{Size: 3}))

	first, err := s.ApplyKernel()
	require.NoError(t, err)
	assert.Equal(t, uint8(100), first[2][2])
	assert.Equal(t, uint8(44), first[0][0])

	second, err := s.ApplyKernel()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, first, s.LastResult())

	// Mutating a returned result must not leak into the session.
	first[2][2] = 0
	assert.Equal(t, uint8(100), s.LastResult()[2][2])
	assert.Equal(t, algorithms.NewFilledGrid(5, 5, 100), s.Image())
}

func TestSetImageCopiesAndDiscardsResult(t *testing.T) {
	s := NewImageSession(nil)
	g := algorithms.NewFilledGrid(3, 3, 50)
	require.NoError(t, s.SetImage(g))
	g[0][0] = 1
	assert.Equal(t, uint8(50), s.Image()[0][0])

	require.NoError(t, s.SetKernel(algorithms.CustomSpec{Weights: [][]float64{{1}}}))
	_, err := s.ApplyKernel()
	require.NoError(t, err)
	require.NotNil(t, s.LastResult())

	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(3, 3, 7)))
	assert.Nil(t, s.LastResult())
	assert.Equal(t, StateReady, s.State())
}

func TestFailedSetKernelKeepsPrevious(t *testing.T) {
	s := NewImageSession(nil)
	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(5, 5, 100)))
	require.NoError(t, s.SetKernel(algorithms.GaussianSpec{Size: 3, Sigma: 1}))
	before, ok := s.Kernel()
	require.True(t, ok)

	err := s.SetKernel(algorithms.GaussianSpec{Size: 4, Sigma: 1})
	assert.ErrorIs(t, err, algorithms.ErrInvalidKernelSize)
	err = s.SetKernel(algorithms.GaussianSpec{Size: 3, Sigma: 0})
	assert.ErrorIs(t, err, algorithms.ErrInvalidParameter)
	err = s.SetKernel(nil)
	assert.ErrorIs(t, err, algorithms.ErrUnsupportedKernelType)
	err = s.SetKernelMatrix(algorithms.Kernel{Weights: [][]float64{{1, 2}}})
	assert.ErrorIs(t, err, algorithms.ErrInvalidKernelSize)

	after, ok := s.Kernel()
	require.True(t, ok)
	assert.Equal(t, before.Weights, after.Weights)
	assert.Equal(t, StateReady, s.State())
}

func TestFailedSetImageKeepsPrevious(t *testing.T) {
	s := NewImageSession(nil)
	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(2, 2, 9)))

	assert.ErrorIs(t, s.SetImage(algorithms.Grid{}), algorithms.ErrEmptyImage)
	assert.ErrorIs(t, s.SetImage(algorithms.Grid{{1}, {1, 2}}), algorithms.ErrRaggedImage)
	assert.Equal(t, algorithms.NewFilledGrid(2, 2, 9), s.Image())
}

func TestApplyKernelTooLarge(t *testing.T) {
	s := NewImageSession(nil)
	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(2, 2, 9)))
	require.NoError(t, s.SetKernel(algorithms.AverageSpec{Size: 5}))

	_, err := s.ApplyKernel()
	assert.ErrorIs(t, err, algorithms.ErrKernelTooLarge)
	assert.Nil(t, s.LastResult())
	assert.Equal(t, StateReady, s.State())
}

func TestApplyKernelRunKeepsInputs(t *testing.T) {
	s := NewImageSession(nil)
	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(5, 5, 100)))
	require.NoError(t, s.SetKernel(algorithms.AverageSpec{Size: 3}))

	run, err := s.ApplyKernelRun()
	require.NoError(t, err)

	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(6, 6, 7)))
	require.NoError(t, s.SetKernel(algorithms.GaussianSpec{Size: 5, Sigma: 1}))

	assert.Equal(t, algorithms.NewFilledGrid(5, 5, 100), run.Image)
	assert.Equal(t, 3, run.Kernel.Size())
	assert.Equal(t, uint8(44), run.Result[0][0])
	assert.Nil(t, s.LastResult())
}

func TestEditedKernelMatrixSeparable(t *testing.T) {
	s := NewImageSession(nil)
	g := algorithms.NewGrid(3, 3)
	g[1][1] = 200
	require.NoError(t, s.SetImage(g))
	require.NoError(t, s.SetKernel(algorithms.AverageSpec{Size: 3}))

	kernel, ok := s.Kernel()
	require.True(t, ok)
	kernel.Weights = [][]float64{{0, -1, 0}, {-1, 5, -1}, {0, -1, 0}}
	require.NoError(t, s.SetKernelMatrix(kernel))

	direct, err := s.ApplyKernel()
	require.NoError(t, err)
	assert.Equal(t, uint8(255), direct[1][1])
	assert.Equal(t, uint8(0), direct[0][1])

	s.SetOptions(algorithms.Options{Separable: true})
	separable, err := s.ApplyKernel()
	require.NoError(t, err)
	assert.Equal(t, direct, separable)
}

func TestOptionsDoNotChangeResult(t *testing.T) {
	s := NewImageSession(nil)
	g := algorithms.NewGrid(20, 20)
	for y := range g {
		for x := range g[y] {
			g[y][x] = uint8((x*13 + y*7) % 256)
		}
	}
	require.NoError(t, s.SetImage(g))
	require.NoError(t, s.SetKernel(algorithms.GaussianSpec{Size: 5, Sigma: 1.5}))

	direct, err := s.ApplyKernel()
	require.NoError(t, err)

	s.SetOptions(algorithms.Options{Workers: 4})
	banded, err := s.ApplyKernel()
	require.NoError(t, err)
	assert.Equal(t, direct, banded)
}

func TestClear(t *testing.T) {
	s := NewImageSession(nil)
	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(3, 3, 1)))
	require.NoError(t, s.SetKernel(algorithms.AverageSpec{Size: 1}))
	s.Clear()

	assert.Equal(t, StateEmpty, s.State())
	assert.Nil(t, s.Image())
	_, ok := s.Kernel()
	assert.False(t, ok)
}

func TestConcurrentUse(t *testing.T) {
	s := NewImageSession(nil)
	require.NoError(t, s.SetImage(algorithms.NewFilledGrid(16, 16, 80)))
	require.NoError(t, s.SetKernel(algorithms.AverageSpec{Size: 3}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			out, err := s.ApplyKernel()
			assert.NoError(t, err)
			assert.Equal(t, uint8(80), out[8][8])
		}()
		go func(size int) {
			defer wg.Done()
			assert.NoError(t, s.SetKernel(algorithms.AverageSpec{Size: size}))
		}(1 + 2*(i%3))
	}
	wg.Wait()
	assert.Equal(t, StateReady, s.State())
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "no kernel configured", NoKernelConfigured.String())
	assert.Contains(t, (&NotReadyError{Reason: NoImageLoaded}).Error(), "no image loaded")
}
