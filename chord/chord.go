package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/note"
)

const (
	MinorSecond  = 1
	MajorSecond  = 2
	MinorThird   = 3
	MajorThird   = 4
	PerfectFour  = 5
	Tritone      = 6
	PerfectFifth = 7
)

// Chord is a set of simultaneous notes. Notes keep the order they were added in,
// which is what ModifyAt and Invert index into.
type Chord struct {
	notes []note.Note
}

func New(notes ...note.Note) *Chord {
	c := &Chord{notes: make([]note.Note, 0, len(notes)+2)}
	c.notes = append(c.notes, notes...)
	return c
}

func (c *Chord) Len() int {
	return len(c.notes)
}

// Notes returns a copy in stored order.
func (c *Chord) Notes() []note.Note {
	res := make([]note.Note, len(c.notes))
	copy(res, c.notes)
	return res
}

func (c *Chord) At(index int) (note.Note, error) {
	if index < 0 || index >= len(c.notes) {
		return note.Note{}, fmt.Errorf("note %d of %d: %w", index, len(c.notes), model.ErrIndex)
	}
	return c.notes[index], nil
}

func (c *Chord) Clone() *Chord {
	return New(c.notes...)
}

func (c *Chord) Append(n note.Note) *Chord {
	c.notes = append(c.notes, n)
	return c
}

// AppendInterval adds a note the given number of semitones above the last one.
func (c *Chord) AppendInterval(semitones int) (*Chord, error) {
	return c.appendIntervals(semitones)
}

// appendIntervals walks each interval from the previous new note and only
// appends once all of them fit.
func (c *Chord) appendIntervals(intervals ...int) (*Chord, error) {
	if len(c.notes) == 0 {
		return c, fmt.Errorf("cannot add an interval to an empty chord: %w", model.ErrInvalidArgument)
	}
	last := c.notes[len(c.notes)-1]
	added := make([]note.Note, 0, len(intervals))
	for _, semitones := range intervals {
		if err := last.Transpose(semitones); err != nil {
			return c, err
		}
		added = append(added, last)
	}
	c.notes = append(c.notes, added...)
	return c, nil
}

func (c *Chord) AddMinorSecond() (*Chord, error) { return c.appendIntervals(MinorSecond) }

func (c *Chord) AddMajorSecond() (*Chord, error) { return c.appendIntervals(MajorSecond) }

func (c *Chord) AddMinorThird() (*Chord, error) { return c.appendIntervals(MinorThird) }

func (c *Chord) AddMajorThird() (*Chord, error) { return c.appendIntervals(MajorThird) }

func (c *Chord) AddPerfectFourth() (*Chord, error) { return c.appendIntervals(PerfectFour) }

func (c *Chord) AddTritone() (*Chord, error) { return c.appendIntervals(Tritone) }

func (c *Chord) AddPerfectFifth() (*Chord, error) { return c.appendIntervals(PerfectFifth) }

// AppendMajorTriad builds a major triad on the last note.
func (c *Chord) AppendMajorTriad() (*Chord, error) {
	return c.appendIntervals(MajorThird, MinorThird)
}

// AppendMinorTriad builds a minor triad on the last note.
func (c *Chord) AppendMinorTriad() (*Chord, error) {
	return c.appendIntervals(MinorThird, MajorThird)
}

func (c *Chord) AppendDiminishedTriad() (*Chord, error) {
	return c.appendIntervals(MinorThird, MinorThird)
}

// ModifyAt replaces the note at index with f(note).
func (c *Chord) ModifyAt(index int, f func(note.Note) note.Note) error {
	if index < 0 || index >= len(c.notes) {
		return fmt.Errorf("modify note %d of %d: %w", index, len(c.notes), model.ErrIndex)
	}
	c.notes[index] = f(c.notes[index])
	return nil
}

// Invert moves the first rootCount notes up an octave, so the note at
// rootCount becomes the new bass.
func (c *Chord) Invert(rootCount int) (*Chord, error) {
	if rootCount < 0 || rootCount > len(c.notes) {
		return c, fmt.Errorf("chord of %d notes has inversions 0 to %d, got %d: %w",
			len(c.notes), len(c.notes), rootCount, model.ErrInvalidArgument)
	}
	shifted := make([]note.Note, rootCount)
	for i := 0; i < rootCount; i++ {
		n := c.notes[i]
		if err := n.OctaveShift(1); err != nil {
			return c, err
		}
		shifted[i] = n
	}
	copy(c.notes, shifted)
	return c, nil
}

// CheckTranspose reports whether every note would stay in range, without moving any.
func (c *Chord) CheckTranspose(semitones int) error {
	_, err := c.transposed(semitones)
	return err
}

func (c *Chord) transposed(semitones int) ([]note.Note, error) {
	res := make([]note.Note, len(c.notes))
	for i, n := range c.notes {
		if err := n.Transpose(semitones); err != nil {
			return nil, err
		}
		res[i] = n
	}
	return res, nil
}

// Transpose moves every note, or none of them if any would leave the key range.
func (c *Chord) Transpose(semitones int) error {
	moved, err := c.transposed(semitones)
	if err != nil {
		return err
	}
	c.notes = moved
	return nil
}

func (c *Chord) OctaveShift(octaves int) error {
	return c.Transpose(octaves * constants.OctaveSize)
}

// Sorted returns the notes lowest first. The chord itself is left alone.
func (c *Chord) Sorted() []note.Note {
	res := c.Notes()
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Compare(res[j]) < 0
	})
	return res
}

func (c *Chord) String() string {
	names := make([]string, 0, len(c.notes))
	for _, n := range c.Sorted() {
		names = append(names, n.Name())
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Stack puts every note of top on bottom, in order, and returns bottom.
func Stack(bottom, top *Chord) *Chord {
	bottom.notes = append(bottom.notes, top.notes...)
	return bottom
}
