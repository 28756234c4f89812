// Application configuration loaded from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kernel-convolution/internal/algorithms"
)

const (
	CodecStd    = "std"
	CodecOpenCV = "opencv"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config controls the front ends. Zero values are filled from Default.
type Config struct {
	Debug     bool           `yaml:"debug"`
	Workers   int            `yaml:"workers"`
	Separable bool           `yaml:"separable"`
	Codec     string         `yaml:"codec"`
	Kernel    KernelConfig   `yaml:"kernel"`
	Presets   []PresetConfig `yaml:"presets"`
}

// KernelConfig selects the kernel installed at startup.
type KernelConfig struct {
	Type   string  `yaml:"type"`
	Size   int     `yaml:"size"`
	Sigma  float64 `yaml:"sigma"`
	Preset string  `yaml:"preset"`
}

// PresetConfig is a named custom kernel.
type PresetConfig struct {
	Name    string      `yaml:"name"`
	Weights [][]float64 `yaml:"weights"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers: 1,
		Codec:   CodecStd,
		Kernel: KernelConfig{
			Type:   string(algorithms.KindGaussian),
			Size:   5,
			Sigma:  1.0,
			Preset: "identity",
		},
	}
}

// Load reads path and overlays it on Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges. Kernel parameters are checked by generating
// the configured kernel, so an invalid size or sigma is reported before any
// image work. A custom kernel naming one of c.Presets is accepted before
// RegisterPresets runs.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	switch c.Codec {
	case CodecStd, CodecOpenCV:
	default:
		return fmt.Errorf("%w: unknown codec %q", ErrInvalidConfig, c.Codec)
	}
	for i, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("%w: preset %d has no name", ErrInvalidConfig, i)
		}
		if err := algorithms.ValidateWeights(p.Weights); err != nil {
			return fmt.Errorf("%w: preset %q: %w", ErrInvalidConfig, p.Name, err)
		}
	}
	if err := c.validateKernel(); err != nil {
		return fmt.Errorf("%w: kernel: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) validateKernel() error {
	kind, err := algorithms.ParseKind(c.Kernel.Type)
	if err != nil {
		return err
	}
	if kind == algorithms.KindCustom {
		want := strings.TrimSpace(strings.ToLower(c.Kernel.Preset))
		for _, p := range c.Presets {
			if strings.TrimSpace(strings.ToLower(p.Name)) == want {
				return nil
			}
		}
	}
	spec, err := c.Kernel.Spec()
	if err != nil {
		return err
	}
	_, err = algorithms.Generate(spec)
	return err
}

// RegisterPresets adds the configured presets to the kernel registry.
func (c Config) RegisterPresets() error {
	for _, p := range c.Presets {
		if err := algorithms.RegisterPreset(p.Name, p.Weights); err != nil {
			return err
		}
	}
	return nil
}

// Params returns the kernel section as a front-end parameter map.
func (k KernelConfig) Params() map[string]interface{} {
	return map[string]interface{}{
		"size":   k.Size,
		"sigma":  k.Sigma,
		"preset": k.Preset,
	}
}

// Spec builds the configured kernel spec. Presets must be registered first.
func (k KernelConfig) Spec() (algorithms.Spec, error) {
	return algorithms.SpecFromParams(k.Type, k.Params())
}

// Options returns the engine options.
func (c Config) Options() algorithms.Options {
	return algorithms.Options{Workers: c.Workers, Separable: c.Separable}
}
