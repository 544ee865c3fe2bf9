package timeline

import (
	"fmt"

	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/note"
	"github.com/jsphweid/scorekit/util"
	"golang.org/x/exp/slices"
)

// Encode turns every note into a note-on at its start and a note-off at its end,
// both with the note's velocity. Events are ordered by tick; events on the same
// tick keep the order their notes were added in.
func (t *Timeline) Encode() []model.Event {
	res := make([]model.Event, 0, 2*len(t.events))
	for _, e := range t.events {
		res = append(res,
			model.Event{Kind: model.On, Key: e.note.Key(), Tick: e.startTick, Velocity: e.velocity},
			model.Event{Kind: model.Off, Key: e.note.Key(), Tick: e.endTick, Velocity: e.velocity},
		)
	}
	slices.SortStableFunc(res, func(a, b model.Event) bool {
		return a.Tick < b.Tick
	})
	return res
}

type pendingNote struct {
	tick     uint64
	velocity uint8
}

// Decode pairs note-ons with note-offs into a new timeline. A note-off closes the
// oldest open note-on of the same key, so overlapping notes on one key pair first
// in, first out. A note-off with nothing open, a note left open at the end, or a
// tick earlier than the one before it is an ErrStream.
func Decode(resolution uint16, events []model.Event) (*Timeline, error) {
	t, err := New(resolution)
	if err != nil {
		return nil, err
	}

	pending := make(map[uint8][]pendingNote)
	var lastTick uint64
	for i, evt := range events {
		if evt.Tick < lastTick {
			return nil, fmt.Errorf("event %d at tick %d comes after tick %d: %w", i, evt.Tick, lastTick, model.ErrStream)
		}
		lastTick = evt.Tick

		n, err := note.New(int(evt.Key))
		if err != nil {
			return nil, fmt.Errorf("event %d: %v: %w", i, err, model.ErrStream)
		}

		switch evt.Kind {
		case model.On:
			pending[evt.Key] = append(pending[evt.Key], pendingNote{tick: evt.Tick, velocity: evt.Velocity})
		case model.Off:
			open := pending[evt.Key]
			if len(open) == 0 {
				return nil, fmt.Errorf("note-off for %v at tick %d has no note-on: %w", n, evt.Tick, model.ErrStream)
			}
			first := open[0]
			pending[evt.Key] = open[1:]

			e, err := NewNoteEvent(n, first.tick, evt.Tick, first.velocity)
			if err != nil {
				return nil, fmt.Errorf("event %d: %v: %w", i, err, model.ErrStream)
			}
			t.AddEvent(e)
		default:
			return nil, fmt.Errorf("event %d has unknown kind %d: %w", i, evt.Kind, model.ErrStream)
		}
	}

	for _, key := range util.GetKeys(pending) {
		if open := pending[key]; len(open) > 0 {
			return nil, fmt.Errorf("%d note-on(s) for %v never ended, first at tick %d: %w",
				len(open), note.MustNew(int(key)), open[0].tick, model.ErrStream)
		}
	}
	return t, nil
}
