package timeline

import (
	"fmt"

	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/note"
	"github.com/jsphweid/scorekit/util"
)

// NoteEvent is a note with a position and a loudness.
type NoteEvent struct {
	note      note.Note
	startTick uint64
	endTick   uint64
	velocity  uint8
}

func NewNoteEvent(n note.Note, startTick, endTick uint64, velocity uint8) (NoteEvent, error) {
	if endTick < startTick {
		return NoteEvent{}, fmt.Errorf("note %v ends at tick %d before it starts at %d: %w",
			n, endTick, startTick, model.ErrInvalidArgument)
	}
	if err := checkVelocity(velocity); err != nil {
		return NoteEvent{}, err
	}
	return NoteEvent{note: n, startTick: startTick, endTick: endTick, velocity: velocity}, nil
}

func checkVelocity(velocity uint8) error {
	if !util.InRange(velocity, constants.MinVelocity, constants.MaxVelocity) {
		return fmt.Errorf("velocity %d must be between %d and %d: %w",
			velocity, constants.MinVelocity, constants.MaxVelocity, model.ErrInvalidArgument)
	}
	return nil
}

func (e NoteEvent) Note() note.Note {
	return e.note
}

func (e NoteEvent) StartTick() uint64 {
	return e.startTick
}

func (e NoteEvent) EndTick() uint64 {
	return e.endTick
}

func (e NoteEvent) Length() uint64 {
	return e.endTick - e.startTick
}

func (e NoteEvent) Velocity() uint8 {
	return e.velocity
}

func (e *NoteEvent) SetNote(n note.Note) {
	e.note = n
}

func (e *NoteEvent) SetVelocity(velocity uint8) error {
	if err := checkVelocity(velocity); err != nil {
		return err
	}
	e.velocity = velocity
	return nil
}

// SetTicks moves the event. The end may not come before the start.
func (e *NoteEvent) SetTicks(startTick, endTick uint64) error {
	if endTick < startTick {
		return fmt.Errorf("end tick %d before start tick %d: %w", endTick, startTick, model.ErrInvalidArgument)
	}
	e.startTick = startTick
	e.endTick = endTick
	return nil
}

func (e NoteEvent) String() string {
	return fmt.Sprintf("%v [%d, %d) vel %d", e.note, e.startTick, e.endTick, e.velocity)
}
