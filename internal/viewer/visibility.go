package viewer

import (
	"context"

	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// VisibilitySensor reacts to page visibility and focus transitions. A hidden
// page is a violation (the machine pauses playback); a mere focus loss only
// obscures the content overlay, without pausing, so switching to take notes
// stays cheap.
type VisibilitySensor struct {
	source  VisibilityEventSource
	overlay Overlay
}

// NewVisibilitySensor creates a visibility sensor over the host source.
func NewVisibilitySensor(source VisibilityEventSource, overlay Overlay) *VisibilitySensor {
	return &VisibilitySensor{source: source, overlay: overlay}
}

// Start subscribes to visibility events.
func (v *VisibilitySensor) Start(ctx context.Context, emit func(Violation)) (func(), error) {
	unsubscribe := v.source.Subscribe(func(event VisibilityEvent) {
		switch {
		case event.Hidden:
			emit(Violation{
				Type:    securityDomain.ActivityFocusLost,
				Details: map[string]any{"duration_ms": 0},
			})
		case event.Blurred:
			v.overlay.Obscure()
		default:
			v.overlay.Reveal()
		}
	})

	return unsubscribe, nil
}
