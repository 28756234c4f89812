// Image session: the loaded image, the active kernel and kernel application
package core

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kernel-convolution/internal/algorithms"
)

// State is the readiness of a session.
type State int

const (
	StateEmpty State = iota
	StateImageLoaded
	StateKernelConfigured
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateImageLoaded:
		return "image_loaded"
	case StateKernelConfigured:
		return "kernel_configured"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ImageSession holds the current image and kernel. It is safe for
// concurrent use; kernel application runs outside the lock on immutable
// snapshots.
type ImageSession struct {
	mu         sync.RWMutex
	image      algorithms.Grid
	kernel     *algorithms.Kernel
	lastResult algorithms.Grid
	options    algorithms.Options
	logger     *slog.Logger
}

// NewImageSession creates an empty session. A nil logger discards output.
func NewImageSession(logger *slog.Logger) *ImageSession {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ImageSession{logger: logger}
}

// SetImage validates and stores a copy of grid. Any prior result is
// discarded; the configured kernel is kept.
func (s *ImageSession) SetImage(grid algorithms.Grid) error {
	if err := grid.Validate(); err != nil {
		s.logger.Error("SESSION: Rejected image", "error", err)
		return fmt.Errorf("set image: %w", err)
	}
	stored := grid.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = stored
	s.lastResult = nil

	s.logger.Info("SESSION: Image loaded",
		"width", stored.Width(),
		"height", stored.Height(),
		"state", s.stateLocked().String())
	return nil
}

// SetKernel generates a kernel from spec and installs it. On failure the
// previously installed kernel stays in place.
func (s *ImageSession) SetKernel(spec algorithms.Spec) error {
	kernel, err := algorithms.Generate(spec)
	if err != nil {
		s.logger.Error("SESSION: Kernel generation failed", "spec", fmt.Sprint(spec), "error", err)
		return fmt.Errorf("set kernel: %w", err)
	}
	s.install(kernel)
	return nil
}

// SetKernelMatrix validates and installs an already built kernel.
func (s *ImageSession) SetKernelMatrix(kernel algorithms.Kernel) error {
	if err := algorithms.ValidateWeights(kernel.Weights); err != nil {
		s.logger.Error("SESSION: Rejected kernel", "name", kernel.Name, "error", err)
		return fmt.Errorf("set kernel: %w", err)
	}
	s.install(kernel.Clone())
	return nil
}

func (s *ImageSession) install(kernel algorithms.Kernel) {
	if !kernel.IsSymmetric() {
		s.logger.Warn("SESSION: Kernel is not point symmetric; applied as correlation, not convolution",
			"kernel", kernel.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.kernel = &kernel
	s.lastResult = nil

	s.logger.Info("SESSION: Kernel configured",
		"kernel", kernel.Name,
		"size", kernel.Size(),
		"state", s.stateLocked().String())
}

// SetOptions changes how subsequent applications are computed.
func (s *ImageSession) SetOptions(opts algorithms.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = opts
	s.logger.Debug("SESSION: Options changed", "workers", opts.Workers, "separable", opts.Separable)
}

// Run is one kernel application together with the inputs it used.
type Run struct {
	Image  algorithms.Grid
	Kernel algorithms.Kernel
	Result algorithms.Grid
}

// ApplyKernel correlates the stored image with the stored kernel and
// returns a new grid. Stored image and kernel are never modified and the
// state does not change, so it may be called repeatedly.
func (s *ImageSession) ApplyKernel() (algorithms.Grid, error) {
	run, err := s.ApplyKernelRun()
	if err != nil {
		return nil, err
	}
	return run.Result, nil
}

// ApplyKernelRun is ApplyKernel that also returns copies of the image and
// kernel the result was computed from, even if either is replaced before
// the caller looks at them.
func (s *ImageSession) ApplyKernelRun() (Run, error) {
	s.mu.RLock()
	image, kernel, opts := s.image, s.kernel, s.options
	s.mu.RUnlock()

	if image == nil {
		return Run{}, &NotReadyError{Reason: NoImageLoaded}
	}
	if kernel == nil {
		return Run{}, &NotReadyError{Reason: NoKernelConfigured}
	}

	start := time.Now()
	result, err := algorithms.ApplyWith(image, *kernel, opts)
	if err != nil {
		s.logger.Error("SESSION: Kernel application failed", "kernel", kernel.Name, "error", err)
		return Run{}, fmt.Errorf("apply kernel: %w", err)
	}

	s.mu.Lock()
	// Keep the result only if neither input changed while computing.
	if sameGrid(s.image, image) && s.kernel == kernel {
		s.lastResult = result
	}
	s.mu.Unlock()

	s.logger.Info("SESSION: Kernel applied",
		"kernel", kernel.Name,
		"width", result.Width(),
		"height", result.Height(),
		"duration", time.Since(start))
	return Run{
		Image:  image.Clone(),
		Kernel: kernel.Clone(),
		Result: result.Clone(),
	}, nil
}

// State returns the current readiness.
func (s *ImageSession) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *ImageSession) stateLocked() State {
	switch {
	case s.image != nil && s.kernel != nil:
		return StateReady
	case s.image != nil:
		return StateImageLoaded
	case s.kernel != nil:
		return StateKernelConfigured
	}
	return StateEmpty
}

// Image returns a copy of the loaded image, or nil.
func (s *ImageSession) Image() algorithms.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image.Clone()
}

// Kernel returns a copy of the active kernel.
func (s *ImageSession) Kernel() (algorithms.Kernel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kernel == nil {
		return algorithms.Kernel{}, false
	}
	return s.kernel.Clone(), true
}

// LastResult returns a copy of the most recent result for the current
// image and kernel, or nil.
func (s *ImageSession) LastResult() algorithms.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult.Clone()
}

// Clear returns the session to the empty state.
func (s *ImageSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = nil
	s.kernel = nil
	s.lastResult = nil
	s.logger.Info("SESSION: Cleared")
}

func sameGrid(a, b algorithms.Grid) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
