package harmony

import (
	"fmt"

	"github.com/jsphweid/scorekit/chord"
	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/mode"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/note"
)

// Key is a tonic in a mode. Its scale is rebuilt from scratch whenever the tonic moves.
type Key struct {
	mode  mode.Mode
	tonic note.Note
	scale *Scale
}

func NewKey(m mode.Mode, tonic note.Note) (*Key, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%v: %w", m, model.ErrInvalidArgument)
	}
	k := &Key{mode: m, tonic: tonic}
	scale, err := newScale(k, tonic)
	if err != nil {
		return nil, err
	}
	k.scale = scale
	return k, nil
}

func (k *Key) Mode() mode.Mode {
	return k.mode
}

func (k *Key) Tonic() note.Note {
	return k.tonic
}

func (k *Key) Scale() *Scale {
	return k.scale
}

// ChordByDegree returns the triad built on the 1-indexed scale degree. The chord
// is the key's own, so Clone it before changing it.
func (k *Key) ChordByDegree(degree int) (*chord.Chord, error) {
	if k.mode.IsChromatic() {
		return nil, fmt.Errorf("the chromatic scale cannot be harmonized: %w", model.ErrInvalidArgument)
	}
	chords := k.scale.chords
	if degree < 1 || degree > chords.Len() {
		return nil, fmt.Errorf("%v %v has degrees 1 to %d, got %d: %w",
			k.tonic, k.mode, chords.Len(), degree, model.ErrInvalidArgument)
	}
	return chords.chords[degree-1], nil
}

// rebuilt returns the tonic and scale the key would have after moving, without
// touching the key.
func (k *Key) rebuilt(semitones int) (note.Note, *Scale, error) {
	tonic := k.tonic
	if err := tonic.Transpose(semitones); err != nil {
		return tonic, nil, err
	}
	scale, err := newScale(k, tonic)
	if err != nil {
		return tonic, nil, err
	}
	return tonic, scale, nil
}

func (k *Key) commit(tonic note.Note, scale *Scale) {
	k.tonic = tonic
	k.scale = scale
}

func (k *Key) Transpose(semitones int) error {
	tonic, scale, err := k.rebuilt(semitones)
	if err != nil {
		return fmt.Errorf("transposing key %v %v: %w", k.tonic, k.mode, err)
	}
	k.commit(tonic, scale)
	return nil
}

func (k *Key) OctaveShift(octaves int) error {
	return k.Transpose(octaves * constants.OctaveSize)
}

func (k *Key) String() string {
	return fmt.Sprintf("%v %v", k.tonic, k.mode)
}
