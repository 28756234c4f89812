// OpenCV-backed grayscale codec
package opencv

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"kernel-convolution/internal/algorithms"
	imageio "kernel-convolution/internal/io"
)

// Codec reads and writes images through OpenCV's imgcodecs module, the
// same backend as cv2.imread/cv2.imwrite.
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

func (c *Codec) Name() string {
	return "opencv"
}

func (c *Codec) DecodeGrayscale(path string) (algorithms.Grid, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()

	if mat.Empty() {
		return nil, &imageio.DecodeError{Path: path, Err: errors.New("opencv could not read file")}
	}
	return MatToGrid(mat)
}

func (c *Codec) Encode(path string, grid algorithms.Grid) error {
	if _, err := imageio.FormatFromPath(path); err != nil {
		return &imageio.EncodeError{Path: path, Err: err}
	}

	mat, err := GridToMat(grid)
	if err != nil {
		return &imageio.EncodeError{Path: path, Err: err}
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return &imageio.EncodeError{Path: path, Err: errors.New("opencv could not write file")}
	}
	return nil
}

// MatToGrid copies a single-channel 8-bit Mat into a grid.
func MatToGrid(mat gocv.Mat) (algorithms.Grid, error) {
	if mat.Empty() {
		return nil, algorithms.ErrEmptyImage
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("unsupported mat type %v, want CV_8UC1", mat.Type())
	}

	rows, cols := mat.Rows(), mat.Cols()
	grid := algorithms.NewGrid(rows, cols)
	if mat.IsContinuous() {
		data := mat.ToBytes()
		for y := 0; y < rows; y++ {
			copy(grid[y], data[y*cols:(y+1)*cols])
		}
		return grid, nil
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			grid[y][x] = mat.GetUCharAt(y, x)
		}
	}
	return grid, nil
}

// GridToMat copies a grid into a new CV_8UC1 Mat. The caller closes it.
func GridToMat(grid algorithms.Grid) (gocv.Mat, error) {
	if err := grid.Validate(); err != nil {
		return gocv.NewMat(), err
	}

	rows, cols := grid.Height(), grid.Width()
	data := make([]byte, 0, rows*cols)
	for _, row := range grid {
		data = append(data, row...)
	}
	return gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC1, data)
}
