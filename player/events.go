package player

// EventType classifies notifications surfaced by the clock after a device poll.
type EventType int

const (
	// TimeChanged reports natural advancement of the playback position.
	TimeChanged EventType = iota
	// DurationKnown reports that the device learned the media duration.
	DurationKnown
	// PlayStateChanged reports a play/pause flip observed on the device.
	PlayStateChanged
)

// Event is one observation from the playback device, delivered in order.
type Event struct {
	Type     EventType
	Time     float64
	Duration float64
	Playing  bool
}
