// convolve filters grayscale images with Gaussian, box and custom kernels.
package main

import (
	"errors"
	"fmt"
	"os"

	"kernel-convolution/internal/algorithms"
	"kernel-convolution/internal/cli"
	"kernel-convolution/internal/config"
	imageio "kernel-convolution/internal/io"
	"kernel-convolution/internal/io/opencv"
)

func main() {
	root := cli.NewRootCommand(
		cli.WithCodec(config.CodecOpenCV, func() imageio.Codec { return opencv.NewCodec() }),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates bad input (2) from I/O failures (1).
func exitCode(err error) int {
	var de *imageio.DecodeError
	var ee *imageio.EncodeError
	switch {
	case errors.As(err, &de), errors.As(err, &ee):
		return 1
	case errors.Is(err, algorithms.ErrInvalidKernelSize),
		errors.Is(err, algorithms.ErrInvalidParameter),
		errors.Is(err, algorithms.ErrUnsupportedKernelType),
		errors.Is(err, algorithms.ErrKernelTooLarge),
		errors.Is(err, config.ErrInvalidConfig):
		return 2
	}
	return 1
}
