// Kernel matrices and the closed set of kernel specifications
package algorithms

import (
	"fmt"
	"math"
)

// Kind names a kernel family.
type Kind string

const (
	KindGaussian Kind = "gaussian"
	KindAverage  Kind = "average"
	KindCustom   Kind = "custom"
)

// Kernel is a square, odd-sided weight matrix.
type Kernel struct {
	Name    string
	Weights [][]float64

	// factor is set for separable kernels: Weights[i][j] == factor[i]*factor[j].
	factor []float64
}

// Size returns the side length of the kernel.
func (k Kernel) Size() int {
	return len(k.Weights)
}

// Radius returns the number of cells on each side of the center.
func (k Kernel) Radius() int {
	return len(k.Weights) / 2
}

// Sum returns the total weight.
func (k Kernel) Sum() float64 {
	sum := 0.0
	for _, row := range k.Weights {
		for _, w := range row {
			sum += w
		}
	}
	return sum
}

// factorTolerance bounds |Weights[i][j] - factor[i]*factor[j]| for a factor
// to be trusted.
const factorTolerance = 1e-12

// Separable returns the 1-D factor of a separable kernel. A kernel whose
// Weights were edited after generation no longer matches its factor and
// reports false.
func (k Kernel) Separable() ([]float64, bool) {
	if k.factor == nil || len(k.factor) != len(k.Weights) {
		return nil, false
	}
	for i, row := range k.Weights {
		if len(row) != len(k.factor) {
			return nil, false
		}
		for j, w := range row {
			if math.Abs(w-k.factor[i]*k.factor[j]) > factorTolerance {
				return nil, false
			}
		}
	}
	return append([]float64(nil), k.factor...), true
}

// IsSymmetric reports whether the kernel equals its 180 degree rotation,
// in which case correlation and true convolution give the same result.
func (k Kernel) IsSymmetric() bool {
	n := len(k.Weights)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if k.Weights[i][j] != k.Weights[n-1-i][n-1-j] {
				return false
			}
		}
	}
	return true
}

// Flipped returns the kernel rotated by 180 degrees. Correlating with the
// flipped kernel is true convolution with the original.
func (k Kernel) Flipped() Kernel {
	n := len(k.Weights)
	out := Kernel{Name: k.Name, Weights: make([][]float64, n)}
	for i := 0; i < n; i++ {
		out.Weights[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out.Weights[i][j] = k.Weights[n-1-i][n-1-j]
		}
	}
	if k.factor != nil {
		out.factor = make([]float64, len(k.factor))
		for i, f := range k.factor {
			out.factor[len(k.factor)-1-i] = f
		}
	}
	return out
}

// Clone returns a deep copy.
func (k Kernel) Clone() Kernel {
	out := Kernel{Name: k.Name, Weights: copyWeights(k.Weights)}
	if k.factor != nil {
		out.factor = append([]float64(nil), k.factor...)
	}
	return out
}

// Spec describes a kernel to synthesize. The set of implementations is
// closed: GaussianSpec, AverageSpec and CustomSpec.
type Spec interface {
	Kind() Kind
	isSpec()
}

// GaussianSpec requests a normalized Gaussian kernel.
type GaussianSpec struct {
	Size  int
	Sigma float64
}

// AverageSpec requests a box filter.
type AverageSpec struct {
	Size int
}

// CustomSpec carries a caller supplied matrix. Name is informational.
type CustomSpec struct {
	Name    string
	Weights [][]float64
}

func (GaussianSpec) Kind() Kind { return KindGaussian }
func (AverageSpec) Kind() Kind  { return KindAverage }
func (CustomSpec) Kind() Kind   { return KindCustom }

func (GaussianSpec) isSpec() {}
func (AverageSpec) isSpec()  {}
func (CustomSpec) isSpec()   {}

func (s GaussianSpec) String() string {
	return fmt.Sprintf("gaussian(size=%d, sigma=%g)", s.Size, s.Sigma)
}

func (s AverageSpec) String() string {
	return fmt.Sprintf("average(size=%d)", s.Size)
}

func (s CustomSpec) String() string {
	if s.Name == "" {
		return fmt.Sprintf("custom(%dx%d)", len(s.Weights), len(s.Weights))
	}
	return fmt.Sprintf("custom(%s)", s.Name)
}

// ValidateSize rejects even and non-positive kernel sides.
func ValidateSize(size int) error {
	if size < 1 || size%2 == 0 {
		return fmt.Errorf("%w: %d (must be odd and >= 1)", ErrInvalidKernelSize, size)
	}
	return nil
}

// ValidateWeights checks that a matrix is square, odd-sided and finite.
func ValidateWeights(weights [][]float64) error {
	n := len(weights)
	if err := ValidateSize(n); err != nil {
		return err
	}
	for i, row := range weights {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidKernelSize, i, len(row), n)
		}
		for j, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("%w: weight (%d,%d) is %v", ErrInvalidParameter, i, j, w)
			}
		}
	}
	return nil
}

func copyWeights(weights [][]float64) [][]float64 {
	if weights == nil {
		return nil
	}
	out := make([][]float64, len(weights))
	for i, row := range weights {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
