package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/model"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

// Codec reads and writes note events as Standard MIDI Files.
type Codec struct {
	// Channel the written notes go on. Reading ignores channels.
	Channel uint8
	Logger  *logrus.Logger
}

func NewCodec(logger *logrus.Logger) *Codec {
	return &Codec{Logger: logger}
}

func (c *Codec) logger() logrus.FieldLogger {
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return c.Logger
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return parse(bytes.NewReader(dat))
}

func parse(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if p := recover(); p != nil {
			s = nil
			e = fmt.Errorf("midi parser panicked: %v: %w", p, model.ErrFormat)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %v: %w", err, model.ErrFormat)
	}
	return res, nil
}

func (c *Codec) ReadEventStream(path string) (uint16, []model.Event, error) {
	c.logger().WithField("path", path).Debug("reading midi file")
	s, err := ReadMidiFile(path)
	if err != nil {
		return 0, nil, err
	}
	return c.events(s)
}

// ReadEventStreamFrom is ReadEventStream for an already open file or a request body.
func (c *Codec) ReadEventStreamFrom(r io.Reader) (uint16, []model.Event, error) {
	s, err := parse(r)
	if err != nil {
		return 0, nil, err
	}
	return c.events(s)
}

// events merges the note messages of every track into one stream ordered by
// absolute tick. Within a tick, events keep their track order.
func (c *Codec) events(s *smf.SMF) (uint16, []model.Event, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0, nil, fmt.Errorf("time format %v is not metric ticks: %w", s.TimeFormat, model.ErrFormat)
	}

	var merged []model.Event
	for _, track := range s.Tracks {
		var absTicks uint64
		for _, event := range track {
			absTicks += uint64(event.Delta)
			msg := midi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				merged = append(merged, model.Event{Kind: model.On, Key: key, Tick: absTicks, Velocity: velocity})
			case msg.GetNoteOff(&channel, &key, &velocity):
				merged = append(merged, model.Event{Kind: model.Off, Key: key, Tick: absTicks, Velocity: velocity})
			case msg.GetNoteEnd(&channel, &key):
				// note-on with velocity 0
				merged = append(merged, model.Event{Kind: model.Off, Key: key, Tick: absTicks})
			}
		}
	}

	slices.SortStableFunc(merged, func(a, b model.Event) bool {
		return a.Tick < b.Tick
	})

	c.logger().WithFields(logrus.Fields{
		"tracks":     len(s.Tracks),
		"events":     len(merged),
		"resolution": ticks.Resolution(),
	}).Debug("read midi events")
	return ticks.Resolution(), merged, nil
}

// build lays the events out on a single track.
func (c *Codec) build(resolution uint16, events []model.Event) (*smf.SMF, error) {
	if resolution == 0 || resolution > constants.MaxResolution {
		return nil, fmt.Errorf("resolution %d: %w", resolution, model.ErrFormat)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)

	var track smf.Track
	var last uint64
	for i, e := range events {
		if e.Tick < last {
			return nil, fmt.Errorf("event %d at tick %d is before tick %d: %w", i, e.Tick, last, model.ErrFormat)
		}
		if e.Tick-last > math.MaxUint32 {
			return nil, fmt.Errorf("event %d is %d ticks after the previous one: %w", i, e.Tick-last, model.ErrFormat)
		}
		delta := uint32(e.Tick - last)
		last = e.Tick

		switch e.Kind {
		case model.On:
			// a note-on with velocity 0 reads back as a note-off
			if e.Velocity == 0 {
				return nil, fmt.Errorf("event %d turns on %d with velocity 0: %w", i, e.Key, model.ErrFormat)
			}
			track.Add(delta, midi.NoteOn(c.Channel, e.Key, e.Velocity))
		case model.Off:
			track.Add(delta, midi.NoteOffVelocity(c.Channel, e.Key, e.Velocity))
		default:
			return nil, fmt.Errorf("event %d has unknown kind %d: %w", i, e.Kind, model.ErrFormat)
		}
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}
	return s, nil
}

func (c *Codec) WriteEventStream(path string, resolution uint16, events []model.Event) error {
	s, err := c.build(resolution, events)
	if err != nil {
		return err
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("error writing midi file %v: %w", path, err)
	}
	c.logger().WithFields(logrus.Fields{
		"path":   path,
		"events": len(events),
	}).Info("wrote midi file")
	return nil
}

// WriteEventStreamTo is WriteEventStream for a response body or buffer.
func (c *Codec) WriteEventStreamTo(w io.Writer, resolution uint16, events []model.Event) error {
	s, err := c.build(resolution, events)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("error writing midi: %w", err)
	}
	return nil
}

// IsFormatError reports whether err came from a file the codec could not understand,
// as opposed to one it could not open or write.
func IsFormatError(err error) bool {
	return errors.Is(err, model.ErrFormat)
}
