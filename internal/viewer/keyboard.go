package viewer

import (
	"context"

	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// KeyboardSensor intercepts capture and inspection shortcuts. Suppressing
// them is cosmetic; the violation report is the part that matters.
type KeyboardSensor struct {
	source KeyEventSource
}

// NewKeyboardSensor creates a keyboard sensor over the host key source.
func NewKeyboardSensor(source KeyEventSource) *KeyboardSensor {
	return &KeyboardSensor{source: source}
}

// classify maps a key event to a violation, or nil for benign keys.
func classify(event KeyEvent) *Violation {
	switch {
	case event.Key == "PrintScreen":
		return &Violation{
			Type:    securityDomain.ActivityScreenshotAttempt,
			Details: map[string]any{"method": "print_screen"},
		}

	case event.Meta && event.Shift &&
		(event.Key == "3" || event.Key == "4" || event.Key == "5"):
		// macOS screenshot and recording chords.
		return &Violation{
			Type:    securityDomain.ActivityScreenshotAttempt,
			Details: map[string]any{"method": "meta_shift_" + event.Key},
		}

	case event.Key == "F12",
		event.Ctrl && event.Shift &&
			(event.Key == "I" || event.Key == "J" || event.Key == "C"):
		return &Violation{
			Type:    securityDomain.ActivityDevToolsDetected,
			Details: map[string]any{"delta_px": 0},
		}

	case event.Ctrl && (event.Key == "S" || event.Key == "P" || event.Key == "U"):
		// Save, print, view-source.
		return &Violation{
			Type:    securityDomain.ActivityOther,
			Details: map[string]any{"description": "blocked shortcut ctrl+" + event.Key},
		}
	}

	return nil
}

// Start subscribes to the key source. Matching events are suppressed and
// reported; everything else passes through untouched.
func (k *KeyboardSensor) Start(ctx context.Context, emit func(Violation)) (func(), error) {
	unsubscribe := k.source.Subscribe(func(event KeyEvent) bool {
		violation := classify(event)
		if violation == nil {
			return false
		}
		emit(*violation)
		return true
	})

	return unsubscribe, nil
}
