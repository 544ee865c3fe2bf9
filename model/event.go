package model

type EventKind uint8

const (
	On EventKind = iota
	Off
)

func (k EventKind) String() string {
	if k == On {
		return "on"
	}
	return "off"
}

// Event is a single note-on or note-off at an absolute tick, the shape
// the midi codec reads and writes.
type Event struct {
	Kind     EventKind
	Key      uint8
	Tick     uint64
	Velocity uint8
}
