package player

import (
	"testing"
)

// fakeDevice is an in-memory Device used to test the clock without mpv.
type fakeDevice struct {
	path     string
	paused   bool
	time     float64
	duration float64
	volume   float64
	speed    float64
}

func (d *fakeDevice) Load(path string) error          { d.path = path; d.time = 0; return nil }
func (d *fakeDevice) SetPause(paused bool) error      { d.paused = paused; return nil }
func (d *fakeDevice) SetTime(seconds float64) error   { d.time = seconds; return nil }
func (d *fakeDevice) SetVolume(volume float64) error  { d.volume = volume; return nil }
func (d *fakeDevice) SetSpeed(speed float64) error    { d.speed = speed; return nil }
func (d *fakeDevice) TimePos() (float64, error)       { return d.time, nil }
func (d *fakeDevice) Duration() (float64, error)      { return d.duration, nil }
func (d *fakeDevice) Paused() (bool, error)           { return d.paused, nil }

func newTestClock(duration float64) (*Clock, *fakeDevice) {
	dev := &fakeDevice{paused: true, duration: duration}
	c := NewClock(dev, 1, 1)
	c.Tick() // pick up duration
	return c, dev
}

func TestSeekClamps(t *testing.T) {
	c, dev := newTestClock(100)

	tests := []struct {
		target float64
		want   float64
	}{
		{50, 50},
		{-10, 0},
		{1e9, 100},
		{0, 0},
		{100, 100},
	}
	for _, tt := range tests {
		c.Seek(tt.target)
		if got := c.State().CurrentTime; got != tt.want {
			t.Errorf("Seek(%v): CurrentTime = %v, want %v", tt.target, got, tt.want)
		}
		if dev.time != tt.want {
			t.Errorf("Seek(%v): device time = %v, want %v", tt.target, dev.time, tt.want)
		}
	}
}

func TestSeekDoesNotChangePlayState(t *testing.T) {
	c, _ := newTestClock(100)
	c.TogglePlayPause()
	c.Seek(40)
	if !c.State().Playing {
		t.Fatal("seek must not change playing state")
	}
}

func TestSkipSetsIndicator(t *testing.T) {
	c, _ := newTestClock(100)
	c.Seek(50)

	if dir := c.Skip(10); dir != SkipForward {
		t.Fatalf("Skip(+10) direction = %v, want forward", dir)
	}
	if got := c.State().CurrentTime; got != 60 {
		t.Fatalf("CurrentTime = %v, want 60", got)
	}
	if dir := c.Skip(-30); dir != SkipBackward {
		t.Fatalf("Skip(-30) direction = %v, want backward", dir)
	}
	if got := c.State().CurrentTime; got != 30 {
		t.Fatalf("CurrentTime = %v, want 30", got)
	}
	c.ClearSkip()
	if c.State().Skip != SkipNone {
		t.Fatal("ClearSkip did not clear the indicator")
	}
}

func TestSeekEmitsTimeChangedWhilePaused(t *testing.T) {
	c, dev := newTestClock(100)

	c.Seek(50)
	if dev.time != 50 {
		t.Fatalf("device time = %v, want 50", dev.time)
	}
	events := c.Tick()
	if len(events) != 1 || events[0].Type != TimeChanged || events[0].Time != 50 {
		t.Fatalf("events after paused seek = %+v, want one time change at 50", events)
	}

	// Reported once, then back to steady state.
	if events := c.Tick(); len(events) != 0 {
		t.Fatalf("second tick emitted %+v", events)
	}
}

func TestFrameStepEmitsTimeChanged(t *testing.T) {
	c, _ := newTestClock(100)
	c.Seek(10)
	c.Tick()

	c.FrameStep(true)
	events := c.Tick()
	if len(events) != 1 || events[0].Type != TimeChanged {
		t.Fatalf("events after frame step = %+v, want one time change", events)
	}
	if want := 10 + 1.0/30.0; events[0].Time != want {
		t.Fatalf("time = %v, want %v", events[0].Time, want)
	}
}

func TestLoadEmitsTimeChangedAtOffset(t *testing.T) {
	c, _ := newTestClock(100)
	if err := c.Load("lecture.mp3", 120); err != nil {
		t.Fatalf("Load: %v", err)
	}

	events := c.Tick()
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2: %+v", len(events), events)
	}
	if events[0].Type != DurationKnown {
		t.Fatalf("events[0] = %+v, want duration known", events[0])
	}
	if events[1].Type != TimeChanged || events[1].Time != 120 {
		t.Fatalf("events[1] = %+v, want time change at 120", events[1])
	}
}

func TestTogglePlayPause(t *testing.T) {
	c, dev := newTestClock(100)
	c.TogglePlayPause()
	if !c.State().Playing || dev.paused {
		t.Fatal("first toggle should start playback")
	}
	c.TogglePlayPause()
	if c.State().Playing || !dev.paused {
		t.Fatal("second toggle should pause in place")
	}
}

func TestToggleMute(t *testing.T) {
	c, _ := newTestClock(100)

	c.ToggleMute()
	if got := c.State().Volume; got != 0 {
		t.Fatalf("volume after mute = %v, want 0", got)
	}
	c.ToggleMute()
	if got := c.State().Volume; got != 1 {
		t.Fatalf("volume after unmute = %v, want 1", got)
	}

	// Any nonzero volume mutes straight to 0.
	c.SetVolume(0.3)
	c.ToggleMute()
	if got := c.State().Volume; got != 0 {
		t.Fatalf("volume after mute from 0.3 = %v, want 0", got)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	c, _ := newTestClock(100)
	c.SetVolume(1.5)
	if got := c.State().Volume; got != 1 {
		t.Fatalf("volume = %v, want 1", got)
	}
	c.SetVolume(-0.5)
	if got := c.State().Volume; got != 0 {
		t.Fatalf("volume = %v, want 0", got)
	}
}

func TestSetSpeedRejectsUnknownMultiplier(t *testing.T) {
	c, _ := newTestClock(100)
	if err := c.SetSpeed(1.5); err != nil {
		t.Fatalf("SetSpeed(1.5): %v", err)
	}
	if err := c.SetSpeed(1.7); err == nil {
		t.Fatal("SetSpeed(1.7) should be rejected")
	}
	if got := c.State().Speed; got != 1.5 {
		t.Fatalf("speed = %v, want 1.5 after rejected set", got)
	}
}

func TestJumpToPercent(t *testing.T) {
	c, _ := newTestClock(4623)
	c.JumpToPercent(5)
	if got := c.State().CurrentTime; got != 2311.5 {
		t.Fatalf("CurrentTime = %v, want 2311.5", got)
	}
	c.JumpToPercent(0)
	if got := c.State().CurrentTime; got != 0 {
		t.Fatalf("CurrentTime = %v, want 0", got)
	}
}

func TestJumpToPercentUnknownDuration(t *testing.T) {
	c := NewClock(&fakeDevice{paused: true}, 1, 1)
	c.JumpToPercent(5)
	if got := c.State().CurrentTime; got != 0 {
		t.Fatalf("CurrentTime = %v, want 0 with unknown duration", got)
	}
	if got := c.ProgressFraction(); got != 0 {
		t.Fatalf("ProgressFraction = %v, want 0 with unknown duration", got)
	}
}

func TestFrameStepPausesThenSteps(t *testing.T) {
	c, _ := newTestClock(100)
	c.Seek(10)
	c.TogglePlayPause()

	c.FrameStep(true)
	st := c.State()
	if st.Playing {
		t.Fatal("frame step must pause playback first")
	}
	want := 10 + 1.0/30.0
	if st.CurrentTime != want {
		t.Fatalf("CurrentTime = %v, want %v", st.CurrentTime, want)
	}

	c.FrameStep(false)
	if got := c.State().CurrentTime; got != 10 {
		t.Fatalf("CurrentTime = %v, want 10", got)
	}
}

func TestTickEmitsEventsInOrder(t *testing.T) {
	dev := &fakeDevice{paused: true}
	c := NewClock(dev, 1, 1)

	// Nothing known yet: no events.
	if events := c.Tick(); len(events) != 0 {
		t.Fatalf("unexpected events: %+v", events)
	}

	// Metadata arrives, playback starts, time advances.
	dev.duration = 4623
	dev.paused = false
	dev.time = 1.5
	events := c.Tick()
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	if events[0].Type != DurationKnown || events[0].Duration != 4623 {
		t.Fatalf("events[0] = %+v, want duration known", events[0])
	}
	if events[1].Type != PlayStateChanged || !events[1].Playing {
		t.Fatalf("events[1] = %+v, want play state change", events[1])
	}
	if events[2].Type != TimeChanged || events[2].Time != 1.5 {
		t.Fatalf("events[2] = %+v, want time change", events[2])
	}

	// Steady state: no duplicate events.
	if events := c.Tick(); len(events) != 0 {
		t.Fatalf("steady state emitted %+v", events)
	}
}
