// Kernel synthesis for the built-in families
package algorithms

import (
	"fmt"
	"math"
)

// Generate synthesizes a kernel from a spec. It is pure: the same spec
// always yields a bit-for-bit identical matrix.
func Generate(spec Spec) (Kernel, error) {
	switch s := spec.(type) {
	case GaussianSpec:
		return Gaussian(s.Size, s.Sigma)
	case *GaussianSpec:
		if s != nil {
			return Gaussian(s.Size, s.Sigma)
		}
	case AverageSpec:
		return Average(s.Size)
	case *AverageSpec:
		if s != nil {
			return Average(s.Size)
		}
	case CustomSpec:
		return Custom(s.Name, s.Weights)
	case *CustomSpec:
		if s != nil {
			return Custom(s.Name, s.Weights)
		}
	}
	return Kernel{}, fmt.Errorf("%w: %T", ErrUnsupportedKernelType, spec)
}

// Gaussian builds a size x size kernel with cell (x, y), centered on the
// midpoint, proportional to exp(-(x²+y²)/(2σ²)), normalized to sum to 1.
func Gaussian(size int, sigma float64) (Kernel, error) {
	if err := ValidateSize(size); err != nil {
		return Kernel{}, err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return Kernel{}, fmt.Errorf("%w: sigma %v (must be > 0)", ErrInvalidParameter, sigma)
	}

	center := size / 2
	twoSigmaSq := 2 * sigma * sigma
	weights := make([][]float64, size)
	sum := 0.0
	for i := 0; i < size; i++ {
		weights[i] = make([]float64, size)
		for j := 0; j < size; j++ {
			x := float64(i - center)
			y := float64(j - center)
			weights[i][j] = math.Exp(-(x*x + y*y) / twoSigmaSq)
			sum += weights[i][j]
		}
	}
	for i := range weights {
		for j := range weights[i] {
			weights[i][j] /= sum
		}
	}

	factor := make([]float64, size)
	factorSum := 0.0
	for i := range factor {
		x := float64(i - center)
		factor[i] = math.Exp(-(x * x) / twoSigmaSq)
		factorSum += factor[i]
	}
	for i := range factor {
		factor[i] /= factorSum
	}

	return Kernel{
		Name:    GaussianSpec{Size: size, Sigma: sigma}.String(),
		Weights: weights,
		factor:  factor,
	}, nil
}

// Average builds a box filter with every cell equal to 1/size².
func Average(size int) (Kernel, error) {
	if err := ValidateSize(size); err != nil {
		return Kernel{}, err
	}

	w := 1 / float64(size*size)
	weights := make([][]float64, size)
	for i := range weights {
		weights[i] = make([]float64, size)
		for j := range weights[i] {
			weights[i][j] = w
		}
	}

	factor := make([]float64, size)
	for i := range factor {
		factor[i] = 1 / float64(size)
	}

	return Kernel{
		Name:    AverageSpec{Size: size}.String(),
		Weights: weights,
		factor:  factor,
	}, nil
}

// Custom validates a caller supplied matrix and returns it unchanged.
func Custom(name string, weights [][]float64) (Kernel, error) {
	if err := ValidateWeights(weights); err != nil {
		return Kernel{}, err
	}
	return Kernel{
		Name:    CustomSpec{Name: name, Weights: weights}.String(),
		Weights: copyWeights(weights),
	}, nil
}
