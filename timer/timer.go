// Package timer implements a countup/countdown work clock that can be bound
// to one task. The session is a pure state machine: the caller drives it
// with one Tick per elapsed second and reacts to the completion signal. It
// holds no goroutines and no clocks of its own.
package timer

import "fmt"

// Mode selects the tick direction.
type Mode string

const (
	ModeCountup   Mode = "countup"
	ModeCountdown Mode = "countdown"
)

// Preset durations, in seconds.
const (
	PomodoroSeconds   = 25 * 60
	ShortBreakSeconds = 5 * 60
	LongBreakSeconds  = 15 * 60
)

// Session is the transient timer state. It is not persisted and is reset
// whenever the bound task changes. Not safe for concurrent use.
type Session struct {
	mode     Mode
	counter  int
	duration int
	running  bool

	boundID  int
	hasBound bool

	// onComplete fires at most once per countdown run, after the session
	// has already stopped, carrying the bound task id.
	onComplete func(taskID int)
}

// NewSession creates a stopped countup session with no bound task.
func NewSession() *Session {
	return &Session{mode: ModeCountup}
}

// OnComplete registers the countdown completion callback. The session stops
// before invoking it, so a callback that panics cannot leave the timer
// running.
func (s *Session) OnComplete(fn func(taskID int)) {
	s.onComplete = fn
}

// Bind attaches the session to a task and adopts its estimate as the
// countdown duration, in seconds. Rebinding resets the counter: to the new
// duration in countdown mode, to zero in countup mode. A non-positive
// estimate clears the duration.
func (s *Session) Bind(taskID, estimatedMinutes int) {
	s.boundID = taskID
	s.hasBound = true
	if estimatedMinutes > 0 {
		s.duration = estimatedMinutes * 60
	} else {
		s.duration = 0
	}
	s.resetCounter()
}

// Unbind detaches the session from its task. The clock state is untouched;
// a later completion simply signals nothing.
func (s *Session) Unbind() {
	s.boundID = 0
	s.hasBound = false
}

// Bound returns the bound task id, if any.
func (s *Session) Bound() (int, bool) {
	return s.boundID, s.hasBound
}

// SetMode switches the tick direction, stopping the clock and resetting the
// counter for the new mode. Setting the current mode only stops and resets.
func (s *Session) SetMode(mode Mode) {
	s.mode = mode
	s.running = false
	s.resetCounter()
}

// Start begins ticking. Starting a countdown whose counter has run out
// reinitializes it to the configured duration first.
func (s *Session) Start() {
	if !s.running && s.mode == ModeCountdown && s.counter <= 0 {
		s.counter = s.duration
	}
	s.running = true
}

// Stop pauses the clock without resetting the counter.
func (s *Session) Stop() {
	s.running = false
}

// Toggle starts a stopped session and stops a running one.
func (s *Session) Toggle() {
	if s.running {
		s.Stop()
	} else {
		s.Start()
	}
}

// Reset stops the clock and restores the counter to its mode's initial
// value: the configured duration for countdown, zero for countup.
func (s *Session) Reset() {
	s.running = false
	s.resetCounter()
}

// Tick advances the clock by one second. It is a no-op while stopped. A
// countdown reaching zero stops the session, clamps the counter at zero,
// and then emits exactly one completion signal if a task is bound.
func (s *Session) Tick() {
	if !s.running {
		return
	}

	if s.mode == ModeCountup {
		s.counter++
		return
	}

	s.counter--
	if s.counter > 0 {
		return
	}

	s.counter = 0
	s.running = false
	if s.onComplete != nil && s.hasBound {
		s.onComplete(s.boundID)
	}
}

// StartPomodoro switches to a running 25 minute countdown.
func (s *Session) StartPomodoro() { s.startPreset(PomodoroSeconds) }

// StartShortBreak switches to a running 5 minute countdown.
func (s *Session) StartShortBreak() { s.startPreset(ShortBreakSeconds) }

// StartLongBreak switches to a running 15 minute countdown.
func (s *Session) StartLongBreak() { s.startPreset(LongBreakSeconds) }

func (s *Session) startPreset(seconds int) {
	s.mode = ModeCountdown
	s.duration = seconds
	s.counter = seconds
	s.running = true
}

// Mode returns the current tick direction.
func (s *Session) Mode() Mode { return s.mode }

// Running reports whether the clock is ticking.
func (s *Session) Running() bool { return s.running }

// Counter returns the elapsed (countup) or remaining (countdown) seconds.
func (s *Session) Counter() int { return s.counter }

// Duration returns the configured countdown duration in seconds.
func (s *Session) Duration() int { return s.duration }

// ProgressPercent is the countdown completion percentage, rounded to the
// nearest integer. It is zero in countup mode or with no duration.
func (s *Session) ProgressPercent() int {
	if s.mode != ModeCountdown || s.duration == 0 {
		return 0
	}
	return int(float64(s.duration-s.counter)/float64(s.duration)*100 + 0.5)
}

func (s *Session) resetCounter() {
	if s.mode == ModeCountdown {
		s.counter = s.duration
	} else {
		s.counter = 0
	}
}

// FormatClock renders seconds as a zero-padded HH:MM:SS string. Negative
// values clamp to zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
