package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresets(t *testing.T) {
	names := PresetNames()
	for _, want := range []string{"identity", "laplacian", "sharpen", "sobel_x", "sobel_y"} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names)

	spec, ok := LookupPreset(" Sobel_Y ")
	require.True(t, ok)
	assert.Equal(t, "sobel_y", spec.Name)
	assert.Equal(t, []float64{1, 2, 1}, spec.Weights[2])
}

func TestRegisterPreset(t *testing.T) {
	err := RegisterPreset("ridge_test", [][]float64{{-1, -1, -1}, {-1, 8, -1}, {-1, -1, -1}})
	require.NoError(t, err)

	spec, ok := LookupPreset("ridge_test")
	require.True(t, ok)
	k, err := Generate(spec)
	require.NoError(t, err)
	assert.InDelta(t, 0, k.Sum(), 1e-12)

	err = RegisterPreset("bad_test", [][]float64{{1, 1}, {1, 1}})
	assert.ErrorIs(t, err, ErrInvalidKernelSize)
	_, ok = LookupPreset("bad_test")
	assert.False(t, ok)

	assert.ErrorIs(t, RegisterPreset("  ", [][]float64{{1}}), ErrInvalidParameter)
}

func TestSpecFromParams(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		params map[string]interface{}
		want   Spec
		err    error
	}{
		{name: "gaussian defaults", kind: "gaussian", want: GaussianSpec{Size: 5, Sigma: 1}},
		{name: "gaussian floats", kind: "Gaussian", params: map[string]interface{}{"size": 7.0, "sigma": 2.0}, want: GaussianSpec{Size: 7, Sigma: 2}},
		{name: "average int", kind: "average", params: map[string]interface{}{"size": 9}, want: AverageSpec{Size: 9}},
		{name: "box alias", kind: "box", want: AverageSpec{Size: 3}},
		{name: "largest size", kind: "average", params: map[string]interface{}{"size": MaxKernelSize}, want: AverageSpec{Size: MaxKernelSize}},
		{name: "oversized gaussian", kind: "gaussian", params: map[string]interface{}{"size": 1 << 20}, err: ErrInvalidKernelSize},
		{name: "oversized average", kind: "average", params: map[string]interface{}{"size": 33.0}, err: ErrInvalidKernelSize},
		{name: "fractional size", kind: "average", params: map[string]interface{}{"size": 3.5}, err: ErrInvalidKernelSize},
		{name: "sigma wrong type", kind: "gaussian", params: map[string]interface{}{"sigma": "wide"}, err: ErrInvalidParameter},
		{name: "custom default preset", kind: "custom", want: CustomSpec{Name: "identity", Weights: [][]float64{{1}}}},
		{name: "custom weights", kind: "custom", params: map[string]interface{}{"weights": [][]float64{{2}}}, want: CustomSpec{Weights: [][]float64{{2}}}},
		{name: "unknown preset", kind: "custom", params: map[string]interface{}{"preset": "nope"}, err: ErrUnsupportedKernelType},
		{name: "unknown kind", kind: "median", err: ErrUnsupportedKernelType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SpecFromParams(tt.kind, tt.params)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKernelKindsDefaultsGenerate(t *testing.T) {
	for _, info := range KernelKinds() {
		params := make(map[string]interface{})
		for _, p := range info.Parameters {
			if p.Default != nil {
				params[p.Name] = p.Default
			}
		}
		spec, err := SpecFromParams(string(info.Kind), params)
		require.NoError(t, err, info.Name)
		_, err = Generate(spec)
		assert.NoError(t, err, info.Name)
	}
}
