// Concrete implementations of quality metrics
package metrics

import (
	"errors"
	"fmt"
	"math"

	"kernel-convolution/internal/algorithms"
)

// ErrDimensionMismatch is returned when the two grids differ in shape.
var ErrDimensionMismatch = errors.New("metrics: image dimensions mismatch")

func checkPair(original, processed algorithms.Grid) error {
	if err := original.Validate(); err != nil {
		return fmt.Errorf("original: %w", err)
	}
	if err := processed.Validate(); err != nil {
		return fmt.Errorf("processed: %w", err)
	}
	if original.Height() != processed.Height() || original.Width() != processed.Width() {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			original.Width(), original.Height(), processed.Width(), processed.Height())
	}
	return nil
}

func meanSquaredError(original, processed algorithms.Grid) float64 {
	sumSquaredDiff := 0.0
	for y := range original {
		for x := range original[y] {
			diff := float64(original[y][x]) - float64(processed[y][x])
			sumSquaredDiff += diff * diff
		}
	}
	return sumSquaredDiff / float64(original.Height()*original.Width())
}

// MSE implements mean squared error
type MSE struct{}

func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed algorithms.Grid) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(original, processed), nil
}

func (m *MSE) GetName() string        { return "MSE" }
func (m *MSE) GetDescription() string { return "Mean squared intensity difference" }
func (m *MSE) IsHigherBetter() bool   { return false }

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(original, processed algorithms.Grid) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}

	mse := meanSquaredError(original, processed)
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}

	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string        { return "PSNR" }
func (p *PSNR) GetDescription() string { return "Peak Signal-to-Noise Ratio in dB" }
func (p *PSNR) IsHigherBetter() bool   { return true }

// MeanShift reports the change in mean intensity, processed minus original.
// Normalized smoothing kernels keep it near zero apart from border darkening.
type MeanShift struct{}

func NewMeanShift() *MeanShift {
	return &MeanShift{}
}

func (m *MeanShift) Calculate(original, processed algorithms.Grid) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}
	return mean(processed) - mean(original), nil
}

func (m *MeanShift) GetName() string        { return "Mean shift" }
func (m *MeanShift) GetDescription() string {
	return "Signed change in mean intensity; values closer to zero are better"
}

// IsHigherBetter is false: a smaller magnitude means the filter preserved
// overall brightness.
func (m *MeanShift) IsHigherBetter() bool { return false }

func mean(g algorithms.Grid) float64 {
	sum := 0.0
	for _, row := range g {
		for _, v := range row {
			sum += float64(v)
		}
	}
	return sum / float64(g.Height()*g.Width())
}
