// Package viewer models the client-side protected viewer: a tamper-detection
// state machine, pluggable sensors over host capabilities, a rotating
// watermark, and a fire-and-forget suspicious-activity reporter.
//
// Everything here is deterrence for honest clients. The server-side
// entitlement oracle and per-request token validation remain the real
// boundary; the viewer assumes all of its guards can be disabled.
package viewer

import (
	"context"

	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// Violation is one detected tamper signal, typed with the same tags the
// server records.
type Violation struct {
	Type    securityDomain.ActivityType
	Details map[string]any
}

// Sensor watches one tamper vector. Start registers against the host and
// returns a disposer that fully stops the sensor; the machine guarantees
// each disposer runs exactly once at teardown. Sensors are independent and
// best-effort: one failing to start never blocks the others.
type Sensor interface {
	Start(ctx context.Context, emit func(Violation)) (dispose func(), err error)
}

// KeyEvent is a key press as delivered by the host.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Shift bool
	Meta  bool
}

// KeyEventSource is the host hook for keyboard events. Subscribe returns an
// unsubscribe function. The handler's boolean result tells the host whether
// to suppress the event's default action.
type KeyEventSource interface {
	Subscribe(handler func(KeyEvent) (suppress bool)) (unsubscribe func())
}

// ViewportProbe exposes the window geometry used by the devtools heuristic.
type ViewportProbe interface {
	OuterSize() (width, height int)
	InnerSize() (width, height int)
}

// VisibilityEvent signals page visibility and focus transitions.
type VisibilityEvent struct {
	Hidden  bool
	Blurred bool
}

// VisibilityEventSource is the host hook for visibility and focus changes.
type VisibilityEventSource interface {
	Subscribe(handler func(VisibilityEvent)) (unsubscribe func())
}

// CaptureCapability is the host's screen capture entry point.
type CaptureCapability interface {
	// Request asks for a capture stream of the given kind ("screen",
	// "window", "tab").
	Request(kind string) error
}

// Player controls media playback. Pause must be safe to call from any
// goroutine and must win a race against a concurrent Play.
type Player interface {
	Pause()
	Play()
}

// Overlay is the host surface for warnings and content obscuring.
type Overlay interface {
	ShowWarning(message string)
	Obscure()
	Reveal()
}
