// Pure Go codec built on the image package and golang.org/x/image
package io

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"kernel-convolution/internal/algorithms"
)

// StdCodec decodes PNG, JPEG, GIF, BMP, TIFF and WebP and encodes all of
// them except WebP. It needs no cgo.
type StdCodec struct {
	// JPEGQuality is used when encoding JPEG; zero means jpeg.DefaultQuality.
	JPEGQuality int
}

func NewStdCodec() *StdCodec {
	return &StdCodec{}
}

func (c *StdCodec) Name() string {
	return "std"
}

func (c *StdCodec) DecodeGrayscale(path string) (algorithms.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, &DecodeError{Path: path, Err: algorithms.ErrEmptyImage}
	}
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return algorithms.FromGray(gray), nil
}

func (c *StdCodec) Encode(path string, grid algorithms.Grid) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	if err := grid.Validate(); err != nil {
		return &EncodeError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &EncodeError{Path: path, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	img := grid.ToGray()
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		quality := c.JPEGQuality
		if quality == 0 {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}
