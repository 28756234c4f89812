// Zero padding for windowed operations
package algorithms

import "fmt"

// Pad returns a copy of grid with radius zero-valued cells added on every
// edge. The input is not modified.
func Pad(grid Grid, radius int) (Grid, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: negative radius %d", ErrInvalidKernelSize, radius)
	}

	height, width := grid.Height(), grid.Width()
	padded := NewGrid(height+2*radius, width+2*radius)
	for y, row := range grid {
		copy(padded[y+radius][radius:radius+width], row)
	}
	return padded, nil
}

// PadForKernel pads grid for a kernel of the given side length.
func PadForKernel(grid Grid, size int) (Grid, error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	return Pad(grid, size/2)
}
