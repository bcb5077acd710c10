package viewer

import (
	"context"
	"time"

	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

const (
	// defaultViewportPollInterval is how often the geometry is sampled.
	defaultViewportPollInterval = time.Second

	// defaultViewportDeltaThreshold is the outer-vs-inner size difference,
	// in pixels, above which docked devtools are assumed. Browser chrome
	// alone stays well under this on every mainstream browser.
	defaultViewportDeltaThreshold = 160
)

// ViewportSensor polls window geometry and flags a large outer-vs-inner
// delta as docked devtools. A heuristic: detached devtools are invisible to
// it, and an unusual browser layout can false-positive. Edge-triggered so a
// viewer parked with devtools open produces one violation, not one per
// second.
type ViewportSensor struct {
	probe     ViewportProbe
	interval  time.Duration
	threshold int
}

// NewViewportSensor creates a viewport sensor with default polling settings.
func NewViewportSensor(probe ViewportProbe) *ViewportSensor {
	return &ViewportSensor{
		probe:     probe,
		interval:  defaultViewportPollInterval,
		threshold: defaultViewportDeltaThreshold,
	}
}

// NewViewportSensorWithOptions creates a viewport sensor with explicit
// polling interval and delta threshold, used by tests.
func NewViewportSensorWithOptions(probe ViewportProbe, interval time.Duration, threshold int) *ViewportSensor {
	return &ViewportSensor{
		probe:     probe,
		interval:  interval,
		threshold: threshold,
	}
}

// exceeded reports whether the current geometry crosses the threshold and
// the larger of the two axis deltas.
func (v *ViewportSensor) exceeded() (bool, int) {
	outerW, outerH := v.probe.OuterSize()
	innerW, innerH := v.probe.InnerSize()

	deltaW := outerW - innerW
	deltaH := outerH - innerH
	delta := max(deltaW, deltaH)

	return delta > v.threshold, delta
}

// Start launches the polling goroutine. The disposer stops the ticker and
// waits for the goroutine to exit.
func (v *ViewportSensor) Start(ctx context.Context, emit func(Violation)) (func(), error) {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()

		tripped := false
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				over, delta := v.exceeded()
				if over && !tripped {
					tripped = true
					emit(Violation{
						Type:    securityDomain.ActivityDevToolsDetected,
						Details: map[string]any{"delta_px": delta},
					})
				}
				if !over {
					tripped = false
				}
			}
		}
	}()

	var disposed bool
	return func() {
		if disposed {
			return
		}
		disposed = true
		close(stop)
		<-done
	}, nil
}
