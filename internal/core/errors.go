// Session readiness errors
package core

import (
	"errors"
	"fmt"
)

// ErrNotReady matches every *NotReadyError via errors.Is.
var ErrNotReady = errors.New("session: not ready")

// NotReadyReason says which half of the session is missing.
type NotReadyReason int

const (
	NoImageLoaded NotReadyReason = iota + 1
	NoKernelConfigured
)

func (r NotReadyReason) String() string {
	switch r {
	case NoImageLoaded:
		return "no image loaded"
	case NoKernelConfigured:
		return "no kernel configured"
	}
	return fmt.Sprintf("NotReadyReason(%d)", int(r))
}

// NotReadyError is returned by ApplyKernel when the session lacks an image
// or a kernel.
type NotReadyError struct {
	Reason NotReadyReason
}

func (e *NotReadyError) Error() string {
	return "session: not ready: " + e.Reason.String()
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}
