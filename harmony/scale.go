package harmony

import (
	"strings"

	"github.com/jsphweid/scorekit/chord"
	"github.com/jsphweid/scorekit/note"
)

// triad qualities for degrees 1 through 7
var degreeTriads = [7]func(*chord.Chord) (*chord.Chord, error){
	(*chord.Chord).AppendMajorTriad,
	(*chord.Chord).AppendMinorTriad,
	(*chord.Chord).AppendMinorTriad,
	(*chord.Chord).AppendMajorTriad,
	(*chord.Chord).AppendMajorTriad,
	(*chord.Chord).AppendMinorTriad,
	(*chord.Chord).AppendDiminishedTriad,
}

// Scale holds the notes of a key from the tonic up to the tonic an octave higher,
// and for non-chromatic keys one triad per degree.
type Scale struct {
	notes  []note.Note
	chords *Progression
}

// newScale builds the scale for k as if its tonic were tonic. The degree triads
// use the fixed major/minor/diminished table whatever the mode.
func newScale(k *Key, tonic note.Note) (*Scale, error) {
	steps := k.mode.Steps()
	s := &Scale{notes: make([]note.Note, 0, len(steps)+1)}
	s.notes = append(s.notes, tonic)
	current := tonic
	for _, step := range steps {
		if err := current.Transpose(step); err != nil {
			return nil, err
		}
		s.notes = append(s.notes, current)
	}

	if k.mode.IsChromatic() {
		return s, nil
	}

	s.chords = NewProgression(k)
	for i, build := range degreeTriads {
		c, err := build(chord.New(s.notes[i]))
		if err != nil {
			return nil, err
		}
		s.chords.AddChord(c)
	}
	return s, nil
}

func (s *Scale) Len() int {
	return len(s.notes)
}

func (s *Scale) Notes() []note.Note {
	res := make([]note.Note, len(s.notes))
	copy(res, s.notes)
	return res
}

// Chords is nil for chromatic keys. Its key is the scale's own key.
func (s *Scale) Chords() *Progression {
	return s.chords
}

// Contains reports whether n's pitch class is in the scale, in any octave.
func (s *Scale) Contains(n note.Note) bool {
	for _, sn := range s.notes {
		if sn.PitchClass() == n.PitchClass() {
			return true
		}
	}
	return false
}

func (s *Scale) String() string {
	names := make([]string, len(s.notes))
	for i, n := range s.notes {
		names[i] = n.Name()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
