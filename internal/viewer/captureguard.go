package viewer

import (
	"context"
	"sync"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// ErrCaptureBlocked is returned to callers of a guarded capture capability
// while the guard is armed.
var ErrCaptureBlocked = apperrors.Wrap(apperrors.ErrForbidden, "screen capture blocked during protected playback")

// CaptureGuard wraps the host's capture capability. While armed, every
// capture request is rejected and reported. This is a documented deterrent,
// not a boundary: OS-level recorders, cameras, and second devices never pass
// through it.
type CaptureGuard struct {
	capability CaptureCapability

	mu    sync.Mutex
	armed bool
	emit  func(Violation)
}

// NewCaptureGuard creates an unarmed guard around the host capability.
func NewCaptureGuard(capability CaptureCapability) *CaptureGuard {
	return &CaptureGuard{capability: capability}
}

// Arm starts rejecting capture requests, reporting each via emit.
func (g *CaptureGuard) Arm(emit func(Violation)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armed = true
	g.emit = emit
}

// Disarm restores pass-through behavior. Idempotent.
func (g *CaptureGuard) Disarm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armed = false
	g.emit = nil
}

// Request implements CaptureCapability. While armed it rejects and reports;
// otherwise it delegates to the wrapped capability.
func (g *CaptureGuard) Request(kind string) error {
	g.mu.Lock()
	armed, emit := g.armed, g.emit
	g.mu.Unlock()

	if armed {
		if emit != nil {
			emit(Violation{
				Type:    securityDomain.ActivityScreenRecordingDetected,
				Details: map[string]any{"api": kind},
			})
		}
		return ErrCaptureBlocked
	}

	return g.capability.Request(kind)
}

// Sensor adapts the guard to the Sensor interface: starting arms it, the
// disposer disarms it.
func (g *CaptureGuard) Sensor() Sensor {
	return captureGuardSensor{guard: g}
}

type captureGuardSensor struct {
	guard *CaptureGuard
}

func (s captureGuardSensor) Start(ctx context.Context, emit func(Violation)) (func(), error) {
	s.guard.Arm(emit)
	return s.guard.Disarm, nil
}
