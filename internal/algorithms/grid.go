// Single-channel pixel grids and their bridge to the image package
package algorithms

import (
	"fmt"
	"image"
	"image/color"
)

// Grid is a row-major grid of 8-bit intensities. All rows share one length.
type Grid [][]uint8

// RawGrid holds unquantized correlation sums, congruent in shape to a Grid.
type RawGrid [][]float64

// NewGrid allocates a zero-valued grid.
func NewGrid(height, width int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]uint8, width)
	}
	return g
}

// NewFilledGrid allocates a grid with every pixel set to v.
func NewFilledGrid(height, width int, v uint8) Grid {
	g := NewGrid(height, width)
	for y := range g {
		for x := range g[y] {
			g[y][x] = v
		}
	}
	return g
}

func (g Grid) Height() int {
	return len(g)
}

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks that the grid is non-empty and rectangular.
func (g Grid) Validate() error {
	if len(g) == 0 || len(g[0]) == 0 {
		return ErrEmptyImage
	}
	width := len(g[0])
	for y, row := range g {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d pixels, want %d", ErrRaggedImage, y, len(row), width)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = append([]uint8(nil), row...)
	}
	return out
}

// Equal reports whether both grids have the same shape and pixels.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(other[y]) {
			return false
		}
		for x := range g[y] {
			if g[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// ToGray copies the grid into an *image.Gray anchored at the origin.
func (g Grid) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width(), g.Height()))
	for y, row := range g {
		copy(img.Pix[y*img.Stride:y*img.Stride+len(row)], row)
	}
	return img
}

// FromGray copies an *image.Gray into a new grid.
func FromGray(img *image.Gray) Grid {
	b := img.Bounds()
	g := NewGrid(b.Dy(), b.Dx())
	for y := 0; y < b.Dy(); y++ {
		offset := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(g[y], img.Pix[offset:offset+b.Dx()])
	}
	return g
}

// FromImage converts any image to intensities using the standard luma model.
func FromImage(img image.Image) Grid {
	if gray, ok := img.(*image.Gray); ok {
		return FromGray(gray)
	}

	b := img.Bounds()
	g := NewGrid(b.Dy(), b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			g[y][x] = c.Y
		}
	}
	return g
}

func newRawGrid(height, width int) RawGrid {
	r := make(RawGrid, height)
	for y := range r {
		r[y] = make([]float64, width)
	}
	return r
}
