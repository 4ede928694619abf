// Package player holds the playback clock and the transcript-follow controller.
package player

import (
	"fmt"
)

// SpeedOptions are the selectable playback speed multipliers.
var SpeedOptions = []float64{0.5, 1, 1.25, 1.5, 2, 3}

// frameStep is one frame at an assumed 30fps, used by the , and . bindings.
const frameStep = 1.0 / 30.0

// SkipDirection tags the transient indicator shown after a relative skip.
type SkipDirection int

const (
	// SkipNone means no skip indicator is pending.
	SkipNone SkipDirection = iota
	// SkipForward marks a forward skip.
	SkipForward
	// SkipBackward marks a backward skip.
	SkipBackward
)

// Device abstracts the audio renderer behind the clock. The mpv IPC client
// implements it for real playback; tests use an in-memory fake.
type Device interface {
	Load(path string) error
	SetPause(paused bool) error
	SetTime(seconds float64) error
	SetVolume(volume float64) error
	SetSpeed(speed float64) error
	TimePos() (float64, error)
	Duration() (float64, error)
	Paused() (bool, error)
}

// State is the full transient playback state for one viewing session.
type State struct {
	CurrentTime float64
	Duration    float64
	Playing     bool
	Volume      float64
	Speed       float64
	Skip        SkipDirection
}

// Clock is the single source of truth for playback time. Only Tick advances
// CurrentTime as a side effect of real playback; every other mutation goes
// through Seek and the named control operations.
type Clock struct {
	device Device
	state  State

	// seeked marks a pending user seek or load that the next Tick must
	// report as a TimeChanged event, even while paused
	seeked bool
}

// NewClock creates a clock over the given device with initial volume and speed.
func NewClock(device Device, volume, speed float64) *Clock {
	if volume < 0 || volume > 1 {
		volume = 1
	}
	if !ValidSpeed(speed) {
		speed = 1
	}
	return &Clock{
		device: device,
		state: State{
			Volume: volume,
			Speed:  speed,
		},
	}
}

// ValidSpeed reports whether s is one of the selectable speed multipliers.
func ValidSpeed(s float64) bool {
	for _, opt := range SpeedOptions {
		if s == opt {
			return true
		}
	}
	return false
}

// State returns a snapshot of the current playback state.
func (c *Clock) State() State {
	return c.state
}

// Load points the device at a new audio resource and resets time and
// duration. Playing state is cleared; duration stays unknown until the
// device reports it on a later tick.
func (c *Clock) Load(path string, offset float64) error {
	c.state.CurrentTime = offset
	c.state.Duration = 0
	c.state.Playing = false
	c.state.Skip = SkipNone
	c.seeked = true
	if c.device == nil {
		return nil
	}
	if err := c.device.Load(path); err != nil {
		return err
	}
	// Reassert volume, speed and pause so a fresh device matches the clock
	_ = c.device.SetPause(true)
	_ = c.device.SetVolume(c.state.Volume)
	_ = c.device.SetSpeed(c.state.Speed)
	if offset > 0 {
		if err := c.device.SetTime(offset); err != nil {
			return err
		}
	}
	return nil
}

// Seek clamps target to [0, duration] and sets the current time without
// changing the playing state. With an unknown duration the target clamps
// to zero. The next Tick reports the new position as a TimeChanged event
// even while paused, so followers recompute their active segment.
func (c *Clock) Seek(target float64) {
	if target < 0 {
		target = 0
	}
	if target > c.state.Duration {
		target = c.state.Duration
	}
	c.state.CurrentTime = target
	c.seeked = true
	if c.device != nil {
		_ = c.device.SetTime(target)
	}
}

// Skip seeks relative to the current time and arms the transient skip
// indicator. The caller is responsible for clearing the indicator after its
// display interval.
func (c *Clock) Skip(delta float64) SkipDirection {
	c.Seek(c.state.CurrentTime + delta)
	if delta >= 0 {
		c.state.Skip = SkipForward
	} else {
		c.state.Skip = SkipBackward
	}
	return c.state.Skip
}

// ClearSkip clears the transient skip indicator.
func (c *Clock) ClearSkip() {
	c.state.Skip = SkipNone
}

// TogglePlayPause flips the playing state and instructs the device to start
// or halt audio in place.
func (c *Clock) TogglePlayPause() {
	c.state.Playing = !c.state.Playing
	if c.device != nil {
		_ = c.device.SetPause(!c.state.Playing)
	}
}

// SetVolume sets the volume, clamped to [0, 1].
func (c *Clock) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.state.Volume = v
	if c.device != nil {
		_ = c.device.SetVolume(v)
	}
}

// ToggleMute flips the volume between 0 and 1. There is no separate mute
// flag: any nonzero volume mutes to 0, and 0 restores to full volume.
func (c *Clock) ToggleMute() {
	if c.state.Volume > 0 {
		c.SetVolume(0)
	} else {
		c.SetVolume(1)
	}
}

// SetSpeed sets the playback speed multiplier. Values outside the option set
// are rejected.
func (c *Clock) SetSpeed(s float64) error {
	if !ValidSpeed(s) {
		return fmt.Errorf("invalid speed %.2fx", s)
	}
	c.state.Speed = s
	if c.device != nil {
		_ = c.device.SetSpeed(s)
	}
	return nil
}

// JumpToPercent seeks to (digit/10) of the duration for digit keys 0-9.
// With an unknown duration every jump lands at zero.
func (c *Clock) JumpToPercent(digit int) {
	if digit < 0 || digit > 9 {
		return
	}
	c.Seek(float64(digit) / 10 * c.state.Duration)
}

// FrameStep pauses playback if playing, then steps one frame forward or
// backward.
func (c *Clock) FrameStep(forward bool) {
	if c.state.Playing {
		c.TogglePlayPause()
	}
	if forward {
		c.Seek(c.state.CurrentTime + frameStep)
	} else {
		c.Seek(c.state.CurrentTime - frameStep)
	}
}

// ProgressFraction returns current/duration in [0, 1], treating an unknown
// duration as zero fill.
func (c *Clock) ProgressFraction() float64 {
	if c.state.Duration <= 0 {
		return 0
	}
	f := c.state.CurrentTime / c.state.Duration
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Tick polls the device and reconciles the observed position, duration, and
// pause state into the clock, returning the resulting events in order. A
// pending seek or load always yields a TimeChanged event, even when the
// device polls back the exact position Seek just set. Device errors leave
// the prior state untouched; a transcript can keep following the last known
// position while the device recovers.
func (c *Clock) Tick() []Event {
	seeked := c.seeked
	c.seeked = false

	if c.device == nil {
		if seeked {
			return []Event{{Type: TimeChanged, Time: c.state.CurrentTime}}
		}
		return nil
	}

	var events []Event

	if dur, err := c.device.Duration(); err == nil && dur > 0 && dur != c.state.Duration {
		c.state.Duration = dur
		events = append(events, Event{Type: DurationKnown, Duration: dur})
	}

	if paused, err := c.device.Paused(); err == nil {
		playing := !paused
		if playing != c.state.Playing {
			c.state.Playing = playing
			events = append(events, Event{Type: PlayStateChanged, Playing: playing})
		}
	}

	if seeked {
		// The device may not have applied the seek yet; report the target
		// and resume reconciling against the poll next tick
		events = append(events, Event{Type: TimeChanged, Time: c.state.CurrentTime})
	} else if pos, err := c.device.TimePos(); err == nil && pos != c.state.CurrentTime {
		c.state.CurrentTime = pos
		events = append(events, Event{Type: TimeChanged, Time: pos})
	}

	return events
}
