// Quality metrics comparing an image with its filtered result
package metrics

import (
	"fmt"
	"sort"

	"kernel-convolution/internal/algorithms"
)

// Metric defines the interface for quality metrics
type Metric interface {
	// Calculate computes the metric value
	Calculate(original, processed algorithms.Grid) (float64, error)

	GetName() string
	GetDescription() string

	// IsHigherBetter returns true if higher values indicate closer images.
	// Signed metrics compare by magnitude.
	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with the default metrics registered
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.RegisterDefaultMetrics()
	return e
}

func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("mse", NewMSE())
	e.Register("psnr", NewPSNR())
	e.Register("mean_shift", NewMeanShift())
}

func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names in sorted order.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculate calculates a specific metric
func (e *Evaluator) Calculate(name string, original, processed algorithms.Grid) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}
	return metric.Calculate(original, processed)
}

// CalculateAll calculates every registered metric. The first failure aborts.
func (e *Evaluator) CalculateAll(original, processed algorithms.Grid) (map[string]float64, error) {
	results := make(map[string]float64, len(e.metrics))
	for _, name := range e.Names() {
		value, err := e.metrics[name].Calculate(original, processed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		results[name] = value
	}
	return results, nil
}
