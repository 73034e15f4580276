package safety

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

const (
	// DefaultPollInterval is how often the supervisor rescans the watch set.
	DefaultPollInterval = 500 * time.Millisecond

	// RumblePattern is the tactile fault signal: three equal pulses.
	RumblePattern = "---"

	// UnpluggedMessage is pinned to the top-left of the controller screen
	// when a device is lost.
	UnpluggedMessage = "DEVICE UNPLUGGED!!!"
)

type supervisorState int

const (
	stateRunning supervisorState = iota
	stateTripped
)

// SupervisorConfig holds supervisor tuning. A zero PollInterval means
// DefaultPollInterval.
type SupervisorConfig struct {
	PollInterval time.Duration
}

// Supervisor watches a fixed set of devices and trips on the first one that
// goes missing: it rumbles the controller, prints UnpluggedMessage and
// stops. It never recovers; the operator reconnects and restarts.
type Supervisor struct {
	feedback v5.Feedback
	watch    []v5.Device
	interval time.Duration
	logger   log.FieldLogger

	state supervisorState
	fault v5.Port
}

// NewSupervisor creates a supervisor over the given watch set. The watch
// set and feedback handle are borrowed and must outlive the supervisor.
func NewSupervisor(feedback v5.Feedback, watch []v5.Device, cfg SupervisorConfig, logger log.FieldLogger) *Supervisor {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Supervisor{
		feedback: feedback,
		watch:    watch,
		interval: interval,
		logger:   logger.WithField("component", "supervisor"),
		state:    stateRunning,
	}
}

// Run polls the watch set until a device goes missing or the context is
// cancelled. On a missing device it emits the fault feedback exactly once
// and returns the offending port with a nil error; on cancellation it
// returns ctx.Err(). Scans visit devices in watch-set order, so the
// reported port is deterministic when several devices fail at once.
func (s *Supervisor) Run(ctx context.Context) (v5.Port, error) {
	s.logger.Debugf("watching %d devices every %v", len(s.watch), s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if port, tripped := s.scan(); tripped {
			s.trip(port)
			return port, nil
		}

		select {
		case <-ctx.Done():
			s.logger.Debug("supervisor cancelled")
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}

// scan walks the watch set once and reports the first missing device.
func (s *Supervisor) scan() (v5.Port, bool) {
	for _, dev := range s.watch {
		if !dev.Present() {
			return dev.Port(), true
		}
	}
	return 0, false
}

func (s *Supervisor) trip(port v5.Port) {
	s.state = stateTripped
	s.fault = port
	s.logger.Warnf("device unplugged on port %d", port)
	s.feedback.Rumble(RumblePattern)
	s.feedback.Print(0, 0, UnpluggedMessage)
}

// Tripped returns the offending port once the supervisor has tripped.
func (s *Supervisor) Tripped() (v5.Port, bool) {
	if s.state != stateTripped {
		return 0, false
	}
	return s.fault, true
}
