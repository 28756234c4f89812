// Kernel kinds, named presets and parameter-map construction for front ends
package algorithms

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "float", "enum", "matrix"
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
	Options     []string    `json:"options,omitempty"` // For enum type
}

// MaxKernelSize is the largest side length SpecFromParams accepts.
const MaxKernelSize = 31

// KindInfo describes a kernel family.
type KindInfo struct {
	Kind        Kind
	Name        string
	Description string
	Parameters  []ParameterInfo
}

var (
	presetsMu sync.RWMutex
	presets   = make(map[string][][]float64)
)

// RegisterPreset adds or replaces a named custom kernel.
func RegisterPreset(name string, weights [][]float64) error {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return fmt.Errorf("%w: empty preset name", ErrInvalidParameter)
	}
	if err := ValidateWeights(weights); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}

	presetsMu.Lock()
	defer presetsMu.Unlock()
	presets[name] = copyWeights(weights)
	return nil
}

// LookupPreset returns the custom spec registered under name.
func LookupPreset(name string) (CustomSpec, bool) {
	name = strings.TrimSpace(strings.ToLower(name))

	presetsMu.RLock()
	defer presetsMu.RUnlock()
	weights, exists := presets[name]
	if !exists {
		return CustomSpec{}, false
	}
	return CustomSpec{Name: name, Weights: copyWeights(weights)}, true
}

// PresetNames returns the registered preset names in sorted order.
func PresetNames() []string {
	presetsMu.RLock()
	defer presetsMu.RUnlock()

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseKind maps a user supplied family name onto a Kind.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.TrimSpace(strings.ToLower(name))) {
	case KindGaussian:
		return KindGaussian, nil
	case KindAverage, "box", "mean":
		return KindAverage, nil
	case KindCustom:
		return KindCustom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKernelType, name)
}

// KernelKinds lists the supported families with their parameters.
func KernelKinds() []KindInfo {
	return []KindInfo{
		{
			Kind:        KindGaussian,
			Name:        "Gaussian",
			Description: "Normalized Gaussian smoothing",
			Parameters: []ParameterInfo{
				{Name: "size", Type: "int", Min: 1.0, Max: float64(MaxKernelSize), Default: 5.0, Description: "Kernel side length (must be odd)"},
				{Name: "sigma", Type: "float", Min: 0.1, Max: 10.0, Default: 1.0, Description: "Standard deviation"},
			},
		},
		{
			Kind:        KindAverage,
			Name:        "Average",
			Description: "Box filter, every weight 1/size²",
			Parameters: []ParameterInfo{
				{Name: "size", Type: "int", Min: 1.0, Max: float64(MaxKernelSize), Default: 3.0, Description: "Kernel side length (must be odd)"},
			},
		},
		{
			Kind:        KindCustom,
			Name:        "Custom",
			Description: "Named preset or caller supplied matrix, applied as correlation",
			Parameters: []ParameterInfo{
				{Name: "preset", Type: "enum", Default: "identity", Description: "Registered preset", Options: PresetNames()},
				{Name: "weights", Type: "matrix", Description: "Square odd-sided weight matrix, overrides preset"},
			},
		},
	}
}

// SpecFromParams builds a spec from untyped front-end input. Numeric values
// may be int or float64; missing parameters take the KernelKinds defaults.
// Sizes above MaxKernelSize are rejected.
func SpecFromParams(kind string, params map[string]interface{}) (Spec, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindGaussian:
		size, err := sizeParam(params, 5)
		if err != nil {
			return nil, err
		}
		sigma, err := floatParam(params, "sigma", 1.0)
		if err != nil {
			return nil, err
		}
		return GaussianSpec{Size: size, Sigma: sigma}, nil

	case KindAverage:
		size, err := sizeParam(params, 3)
		if err != nil {
			return nil, err
		}
		return AverageSpec{Size: size}, nil

	default:
		if val, ok := params["weights"]; ok && val != nil {
			weights, ok := val.([][]float64)
			if !ok {
				return nil, fmt.Errorf("%w: weights must be [][]float64, got %T", ErrInvalidParameter, val)
			}
			return CustomSpec{Weights: copyWeights(weights)}, nil
		}

		name := "identity"
		if val, ok := params["preset"]; ok {
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("%w: preset must be a string, got %T", ErrInvalidParameter, val)
			}
			name = s
		}
		spec, exists := LookupPreset(name)
		if !exists {
			return nil, fmt.Errorf("%w: unknown preset %q", ErrUnsupportedKernelType, name)
		}
		return spec, nil
	}
}

func sizeParam(params map[string]interface{}, def int) (int, error) {
	size, err := intParam(params, "size", def)
	if err != nil {
		return 0, err
	}
	if size > MaxKernelSize {
		return 0, fmt.Errorf("%w: %d exceeds the maximum of %d", ErrInvalidKernelSize, size, MaxKernelSize)
	}
	return size, nil
}

func intParam(params map[string]interface{}, name string, def int) (int, error) {
	val, ok := params[name]
	if !ok || val == nil {
		return def, nil
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidKernelSize, name, v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("%w: %s has type %T", ErrInvalidParameter, name, val)
}

func floatParam(params map[string]interface{}, name string, def float64) (float64, error) {
	val, ok := params[name]
	if !ok || val == nil {
		return def, nil
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: %s has type %T", ErrInvalidParameter, name, val)
}

func init() {
	builtin := map[string][][]float64{
		"identity": {{1}},
		"sobel_x": {
			{-1, 0, 1},
			{-2, 0, 2},
			{-1, 0, 1},
		},
		"sobel_y": {
			{-1, -2, -1},
			{0, 0, 0},
			{1, 2, 1},
		},
		"laplacian": {
			{0, 1, 0},
			{1, -4, 1},
			{0, 1, 0},
		},
		"sharpen": {
			{0, -1, 0},
			{-1, 5, -1},
			{0, -1, 0},
		},
	}
	for name, weights := range builtin {
		if err := RegisterPreset(name, weights); err != nil {
			panic(err)
		}
	}
}
