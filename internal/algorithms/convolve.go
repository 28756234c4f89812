// Zero-padded 2D cross-correlation with optional banding and separable passes
package algorithms

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Options tunes how a correlation is computed. The zero value is the
// direct, single-threaded form; every option yields the same result within
// floating point tolerance.
type Options struct {
	// Workers above one split the output into disjoint horizontal bands.
	Workers int
	// Separable uses two 1-D passes when the kernel carries a factor.
	Separable bool
}

// Apply correlates grid with kernel and quantizes the result. Inputs are
// read-only; the returned grid is newly allocated.
func Apply(grid Grid, kernel Kernel) (Grid, error) {
	return ApplyWith(grid, kernel, Options{})
}

// ApplyWith is Apply with explicit options.
func ApplyWith(grid Grid, kernel Kernel, opts Options) (Grid, error) {
	raw, err := CorrelateWith(grid, kernel, opts)
	if err != nil {
		return nil, err
	}
	return Quantize(raw), nil
}

// Correlate returns the raw (unquantized) cross-correlation of grid with
// kernel. The kernel is not flipped.
func Correlate(grid Grid, kernel Kernel) (RawGrid, error) {
	return CorrelateWith(grid, kernel, Options{})
}

// CorrelateWith is Correlate with explicit options.
func CorrelateWith(grid Grid, kernel Kernel, opts Options) (RawGrid, error) {
	if err := validateInputs(grid, kernel); err != nil {
		return nil, err
	}

	padded, err := PadForKernel(grid, kernel.Size())
	if err != nil {
		return nil, err
	}

	height, width := grid.Height(), grid.Width()
	raw := newRawGrid(height, width)

	band := correlateRows
	if factor, ok := kernel.Separable(); ok && opts.Separable {
		band = func(padded Grid, _ Kernel, raw RawGrid, start, end int) {
			separableRows(padded, factor, raw, start, end)
		}
	}

	workers := opts.Workers
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		band(padded, kernel, raw, 0, height)
		return raw, nil
	}

	// Row i of the output reads only padded rows [i, i+size), so bands
	// share nothing but the read-only padded grid.
	rowsPerBand := (height + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < height; start += rowsPerBand {
		end := min(start+rowsPerBand, height)
		g.Go(func() error {
			band(padded, kernel, raw, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raw, nil
}

func validateInputs(grid Grid, kernel Kernel) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	if err := ValidateWeights(kernel.Weights); err != nil {
		return err
	}
	size := kernel.Size()
	if size > grid.Height() || size > grid.Width() {
		return fmt.Errorf("%w: %dx%d kernel on %dx%d image",
			ErrKernelTooLarge, size, size, grid.Width(), grid.Height())
	}
	return nil
}

// correlateRows fills raw rows [start, end) using the direct form.
func correlateRows(padded Grid, kernel Kernel, raw RawGrid, start, end int) {
	size := kernel.Size()
	width := len(raw[0])
	for i := start; i < end; i++ {
		out := raw[i]
		for j := 0; j < width; j++ {
			sum := 0.0
			for ky := 0; ky < size; ky++ {
				src := padded[i+ky][j : j+size]
				weights := kernel.Weights[ky]
				for kx, w := range weights {
					sum += float64(src[kx]) * w
				}
			}
			out[j] = sum
		}
	}
}

// separableRows fills raw rows [start, end) with a horizontal pass over the
// padded rows the band needs followed by a vertical pass.
func separableRows(padded Grid, factor []float64, raw RawGrid, start, end int) {
	size := len(factor)
	width := len(raw[0])

	horizontal := make([][]float64, end-start+size-1)
	for r := range horizontal {
		src := padded[start+r]
		row := make([]float64, width)
		for j := 0; j < width; j++ {
			sum := 0.0
			for k, f := range factor {
				sum += float64(src[j+k]) * f
			}
			row[j] = sum
		}
		horizontal[r] = row
	}

	for i := start; i < end; i++ {
		out := raw[i]
		for j := 0; j < width; j++ {
			sum := 0.0
			for k, f := range factor {
				sum += horizontal[i-start+k][j] * f
			}
			out[j] = sum
		}
	}
}
