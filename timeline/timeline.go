package timeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsphweid/scorekit/chord"
	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/harmony"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/note"
	"github.com/jsphweid/scorekit/util"
	"golang.org/x/exp/slices"
)

// Timeline is a list of note events in the order they were added, plus the
// number of ticks in a quarter note.
type Timeline struct {
	resolution uint16
	events     []NoteEvent
}

func New(resolution uint16) (*Timeline, error) {
	if !util.InRange(resolution, 1, constants.MaxResolution) {
		return nil, fmt.Errorf("resolution %d must be between 1 and %d: %w",
			resolution, constants.MaxResolution, model.ErrInvalidArgument)
	}
	return &Timeline{resolution: resolution}, nil
}

func (t *Timeline) Resolution() uint16 {
	return t.resolution
}

func (t *Timeline) Len() int {
	return len(t.events)
}

// Events returns a copy in insertion order.
func (t *Timeline) Events() []NoteEvent {
	return slices.Clone(t.events)
}

func (t *Timeline) At(index int) (NoteEvent, error) {
	if index < 0 || index >= len(t.events) {
		return NoteEvent{}, fmt.Errorf("event %d of %d: %w", index, len(t.events), model.ErrIndex)
	}
	return t.events[index], nil
}

func (t *Timeline) AddEvent(e NoteEvent) {
	t.events = append(t.events, e)
}

// endTick is startTick+length, or ErrInvalidArgument if that does not fit in a tick.
func endTick(startTick, length uint64) (uint64, error) {
	if length > math.MaxUint64-startTick {
		return 0, fmt.Errorf("note at tick %d of length %d ends past the last tick: %w",
			startTick, length, model.ErrInvalidArgument)
	}
	return startTick + length, nil
}

func (t *Timeline) AddNote(n note.Note, startTick, length uint64, velocity uint8) error {
	end, err := endTick(startTick, length)
	if err != nil {
		return err
	}
	e, err := NewNoteEvent(n, startTick, end, velocity)
	if err != nil {
		return err
	}
	t.AddEvent(e)
	return nil
}

func chordEvents(c *chord.Chord, startTick, length uint64, velocity uint8) ([]NoteEvent, error) {
	end, err := endTick(startTick, length)
	if err != nil {
		return nil, err
	}
	res := make([]NoteEvent, 0, c.Len())
	for _, n := range c.Notes() {
		e, err := NewNoteEvent(n, startTick, end, velocity)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

// AddChord adds every note of the chord with the same start, length and velocity.
func (t *Timeline) AddChord(c *chord.Chord, startTick, length uint64, velocity uint8) error {
	events, err := chordEvents(c, startTick, length, velocity)
	if err != nil {
		return err
	}
	t.events = append(t.events, events...)
	return nil
}

// AddProgression places chord i at startTick*(i+1), each lengthPerChord long.
// A zero startTick therefore stacks every chord at tick 0.
func (t *Timeline) AddProgression(p *harmony.Progression, startTick, lengthPerChord uint64, velocity uint8) error {
	var events []NoteEvent
	for i, c := range p.Chords() {
		if startTick > math.MaxUint64/uint64(i+1) {
			return fmt.Errorf("chord %d would start past the last tick (%d * %d): %w",
				i, startTick, i+1, model.ErrInvalidArgument)
		}
		ce, err := chordEvents(c, startTick*uint64(i+1), lengthPerChord, velocity)
		if err != nil {
			return fmt.Errorf("chord %d: %w", i, err)
		}
		events = append(events, ce...)
	}
	t.events = append(t.events, events...)
	return nil
}

func (t *Timeline) RemoveAt(index int) error {
	if index < 0 || index >= len(t.events) {
		return fmt.Errorf("remove event %d of %d: %w", index, len(t.events), model.ErrIndex)
	}
	t.events = slices.Delete(t.events, index, index+1)
	return nil
}

// ModifyAt runs f on a copy of the event and stores the copy if f succeeds.
func (t *Timeline) ModifyAt(index int, f func(*NoteEvent) error) error {
	if index < 0 || index >= len(t.events) {
		return fmt.Errorf("modify event %d of %d: %w", index, len(t.events), model.ErrIndex)
	}
	e := t.events[index]
	if err := f(&e); err != nil {
		return err
	}
	t.events[index] = e
	return nil
}

// Sorted returns the events ordered by start tick. Events starting together keep
// their insertion order.
func (t *Timeline) Sorted() []NoteEvent {
	res := slices.Clone(t.events)
	slices.SortStableFunc(res, func(a, b NoteEvent) bool {
		return a.startTick < b.startTick
	})
	return res
}

// End is the last end tick of any event.
func (t *Timeline) End() uint64 {
	var end uint64
	for _, e := range t.events {
		end = util.Max(end, e.endTick)
	}
	return end
}

// Excerpt copies the first maxNotes events starting at or after fromTick.
// A maxNotes of 0 or less keeps all of them.
func (t *Timeline) Excerpt(fromTick uint64, maxNotes int) *Timeline {
	res := &Timeline{resolution: t.resolution}
	for _, e := range t.Sorted() {
		if maxNotes > 0 && len(res.events) >= maxNotes {
			break
		}
		if e.startTick >= fromTick {
			res.events = append(res.events, e)
		}
	}
	return res
}

func (t *Timeline) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Timeline [resolution: %d", t.resolution)
	for _, e := range t.Sorted() {
		sb.WriteString(", ")
		sb.WriteString(e.String())
	}
	sb.WriteString("]")
	return sb.String()
}
