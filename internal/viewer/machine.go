package viewer

import (
	"context"
	"log/slog"
	"sync"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

// State is the tamper-detection machine state.
type State string

const (
	// StateIdle is the initial state, before any sensor is registered.
	StateIdle State = "idle"
	// StateArmed means all sensors are live and playback may proceed.
	StateArmed State = "armed"
	// StatePaused means a violation fired; playback is paused until the
	// viewer acknowledges the warning.
	StatePaused State = "paused"
	// StateTornDown is terminal; every disposer has run.
	StateTornDown State = "torn_down"
)

// ErrNotIdle is returned when Arm is called on a machine that already ran.
var ErrNotIdle = apperrors.Wrap(apperrors.ErrConflict, "machine already armed or torn down")

// Machine drives the viewer protection lifecycle:
//
//	Idle -> Armed -> (violation -> Paused -> Acknowledge -> Armed) -> TornDown
//
// On a violation the player is paused synchronously before anything else, so
// the pause always wins a race against a concurrent play. The warning
// surfaces next, and the report goes out last, fire-and-forget.
type Machine struct {
	sensors  []Sensor
	player   Player
	overlay  Overlay
	reporter *Reporter
	logger   *slog.Logger

	mu        sync.Mutex
	state     State
	disposers []func()

	teardownOnce sync.Once
}

// NewMachine creates an idle machine. The reporter may be nil, in which case
// violations are handled locally but never reported.
func NewMachine(
	sensors []Sensor,
	player Player,
	overlay Overlay,
	reporter *Reporter,
	logger *slog.Logger,
) *Machine {
	return &Machine{
		sensors:  sensors,
		player:   player,
		overlay:  overlay,
		reporter: reporter,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current machine state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Arm starts every configured sensor and transitions Idle -> Armed. Sensors
// are independent: a sensor that fails to start is logged and skipped, the
// rest still arm. Arm can run at most once per machine.
func (m *Machine) Arm(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return ErrNotIdle
	}
	m.state = StateArmed
	m.mu.Unlock()

	for _, sensor := range m.sensors {
		dispose, err := sensor.Start(ctx, m.handleViolation)
		if err != nil {
			m.logger.Warn("sensor failed to start", slog.Any("error", err))
			continue
		}

		m.mu.Lock()
		if m.state == StateTornDown {
			// Teardown ran while this sensor was starting and already
			// drained the disposer list, so dispose here.
			m.mu.Unlock()
			dispose()
			continue
		}
		m.disposers = append(m.disposers, dispose)
		m.mu.Unlock()
	}

	m.logger.Debug("viewer protection armed", slog.Int("sensors", len(m.sensors)))
	return nil
}

// handleViolation is the single entry point for sensor signals. Ordering is
// the contract: pause synchronously, then warn, then report. Violations
// arriving while already paused or torn down are dropped.
func (m *Machine) handleViolation(violation Violation) {
	m.mu.Lock()
	if m.state != StateArmed {
		m.mu.Unlock()
		return
	}
	m.state = StatePaused

	// Pause under the lock so no concurrent Play can be ordered after it.
	m.player.Pause()
	m.mu.Unlock()

	m.overlay.ShowWarning("Protected content: playback paused")

	if m.reporter != nil {
		m.reporter.Report(Report{
			Type:    violation.Type,
			Details: violation.Details,
		})
	}

	m.logger.Info("violation handled", slog.String("type", string(violation.Type)))
}

// Acknowledge returns a paused machine to Armed. Playback stays paused; the
// viewer resumes it explicitly.
func (m *Machine) Acknowledge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StatePaused {
		return
	}
	m.state = StateArmed
	m.overlay.Reveal()
}

// Teardown disposes every sensor exactly once and transitions to TornDown.
// Safe to call multiple times and from any state.
func (m *Machine) Teardown() {
	m.teardownOnce.Do(func() {
		m.mu.Lock()
		disposers := m.disposers
		m.disposers = nil
		m.state = StateTornDown
		m.mu.Unlock()

		for _, dispose := range disposers {
			dispose()
		}

		m.logger.Debug("viewer protection torn down")
	})
}
