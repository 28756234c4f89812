// Sentinel errors shared by kernel synthesis and convolution
package algorithms

import "errors"

// Every failure is detected before computation starts. Callers match with
// errors.Is; returned values are wrapped with the offending input.
var (
	// ErrInvalidKernelSize is returned for even, non-positive or non-square kernels.
	ErrInvalidKernelSize = errors.New("algorithms: invalid kernel size")

	// ErrInvalidParameter is returned for out-of-range kernel parameters
	// (non-positive sigma, NaN or infinite weights).
	ErrInvalidParameter = errors.New("algorithms: invalid kernel parameter")

	// ErrUnsupportedKernelType is returned for an unknown kernel family or preset.
	ErrUnsupportedKernelType = errors.New("algorithms: unsupported kernel type")

	// ErrEmptyImage is returned when a grid has no rows or zero-length rows.
	ErrEmptyImage = errors.New("algorithms: empty image")

	// ErrRaggedImage is returned when grid rows differ in length.
	ErrRaggedImage = errors.New("algorithms: image rows differ in length")

	// ErrKernelTooLarge is returned when the kernel side exceeds the image height or width.
	ErrKernelTooLarge = errors.New("algorithms: kernel larger than image")
)
