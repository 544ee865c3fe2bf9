package note

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/util"
)

// Transposer is implemented by everything that can be moved by semitones.
// Implementations change the receiver in place and leave it untouched on error.
type Transposer interface {
	Transpose(semitones int) error
	OctaveShift(octaves int) error
}

// Names only uses sharps for the black keys.
var Names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is a MIDI key in 0..127. 60 is C4 (middle C) and 69 is A4 (440Hz).
type Note struct {
	key uint8
}

func New(key int) (Note, error) {
	if !util.InRange(key, constants.MinKey, constants.MaxKey) {
		return Note{}, fmt.Errorf("midi key %d: %w", key, model.ErrRange)
	}
	return Note{key: uint8(key)}, nil
}

// MustNew is New for keys known to be valid. It panics otherwise.
func MustNew(key int) Note {
	n, err := New(key)
	if err != nil {
		panic(err)
	}
	return n
}

// Parse accepts either a raw key ("60") or a sharp-spelled name ("C#4", "c-1").
func Parse(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Note{}, fmt.Errorf("empty note name: %w", model.ErrInvalidArgument)
	}
	if key, err := strconv.Atoi(s); err == nil {
		return New(key)
	}

	upper := strings.ToUpper(s)
	class := -1
	rest := ""
	// try two-character names first so "C#" wins over "C"
	for i := len(Names) - 1; i >= 0; i-- {
		if len(Names[i]) == 2 && strings.HasPrefix(upper, Names[i]) {
			class, rest = i, upper[2:]
			break
		}
	}
	if class < 0 {
		for i, name := range Names {
			if len(name) == 1 && strings.HasPrefix(upper, name) {
				class, rest = i, upper[1:]
				break
			}
		}
	}
	if class < 0 {
		return Note{}, fmt.Errorf("unknown note name %q: %w", s, model.ErrInvalidArgument)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Note{}, fmt.Errorf("bad octave in %q: %w", s, model.ErrInvalidArgument)
	}
	if !util.InRange(octave, constants.MinOctave, constants.MaxOctave) {
		return Note{}, fmt.Errorf("octave %d in %q is outside %d to %d: %w",
			octave, s, constants.MinOctave, constants.MaxOctave, model.ErrRange)
	}
	return New((octave+1)*constants.OctaveSize + class)
}

func (n Note) Key() uint8 {
	return n.key
}

// PitchClass is 0 for C through 11 for B.
func (n Note) PitchClass() int {
	return int(n.key) % constants.OctaveSize
}

// Octave runs from -1 to 9.
func (n Note) Octave() int {
	return int(n.key)/constants.OctaveSize - 1
}

func (n Note) Name() string {
	return Names[n.PitchClass()] + strconv.Itoa(n.Octave())
}

func (n Note) String() string {
	return n.Name()
}

// Compare returns the difference between the two raw keys.
func (n Note) Compare(other Note) int {
	return int(n.key) - int(other.key)
}

func (n *Note) Transpose(semitones int) error {
	moved, err := New(int(n.key) + semitones)
	if err != nil {
		return fmt.Errorf("transposing %v by %d: %w", n.Name(), semitones, err)
	}
	*n = moved
	return nil
}

func (n *Note) OctaveShift(octaves int) error {
	return n.Transpose(octaves * constants.OctaveSize)
}
