// Quantization of raw sums back into 8-bit intensities
package algorithms

import "math"

// quantizeEpsilon absorbs accumulated rounding so that weights summing to
// one map a constant region back onto itself.
const quantizeEpsilon = 1e-9

// QuantizeValue clamps v into [0, 255] and floors it.
func QuantizeValue(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Floor(v + quantizeEpsilon))
}

// Quantize maps every raw value through QuantizeValue. It never fails.
func Quantize(raw RawGrid) Grid {
	out := make(Grid, len(raw))
	for y, row := range raw {
		out[y] = make([]uint8, len(row))
		for x, v := range row {
			out[y][x] = QuantizeValue(v)
		}
	}
	return out
}
