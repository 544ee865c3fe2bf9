package harmony

import (
	"fmt"
	"strings"

	"github.com/jsphweid/scorekit/chord"
	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/note"
)

// Progression is an ordered list of chords in a key. Transposing it moves the
// key and every chord together.
type Progression struct {
	key    *Key
	chords []*chord.Chord
}

func NewProgression(k *Key) *Progression {
	return &Progression{key: k}
}

func (p *Progression) Key() *Key {
	return p.key
}

func (p *Progression) Len() int {
	return len(p.chords)
}

func (p *Progression) Chords() []*chord.Chord {
	res := make([]*chord.Chord, len(p.chords))
	copy(res, p.chords)
	return res
}

func (p *Progression) At(index int) (*chord.Chord, error) {
	if index < 0 || index >= len(p.chords) {
		return nil, fmt.Errorf("chord %d of %d: %w", index, len(p.chords), model.ErrIndex)
	}
	return p.chords[index], nil
}

func (p *Progression) AddChord(c *chord.Chord) *Progression {
	p.chords = append(p.chords, c)
	return p
}

func (p *Progression) AddMajorChord(root note.Note) (*Progression, error) {
	c, err := chord.New(root).AppendMajorTriad()
	if err != nil {
		return p, err
	}
	return p.AddChord(c), nil
}

func (p *Progression) AddMinorChord(root note.Note) (*Progression, error) {
	c, err := chord.New(root).AppendMinorTriad()
	if err != nil {
		return p, err
	}
	return p.AddChord(c), nil
}

// AddChordByDegree appends a copy of the key's triad on degree.
func (p *Progression) AddChordByDegree(degree int) (*Progression, error) {
	c, err := p.key.ChordByDegree(degree)
	if err != nil {
		return p, err
	}
	return p.AddChord(c.Clone()), nil
}

func (p *Progression) ModifyAt(index int, f func(*chord.Chord) *chord.Chord) error {
	if index < 0 || index >= len(p.chords) {
		return fmt.Errorf("modify chord %d of %d: %w", index, len(p.chords), model.ErrIndex)
	}
	c := f(p.chords[index])
	if c == nil {
		return fmt.Errorf("modify chord %d returned no chord: %w", index, model.ErrInvalidArgument)
	}
	p.chords[index] = c
	return nil
}

// Transpose checks that the key and every chord can move before moving any of them.
func (p *Progression) Transpose(semitones int) error {
	tonic, scale, err := p.key.rebuilt(semitones)
	if err != nil {
		return fmt.Errorf("transposing progression key: %w", err)
	}
	for i, c := range p.chords {
		if err := c.CheckTranspose(semitones); err != nil {
			return fmt.Errorf("transposing progression chord %d: %w", i, err)
		}
	}

	p.key.commit(tonic, scale)
	// a chord added more than once must still only move once
	moved := make(map[*chord.Chord]bool, len(p.chords))
	for _, c := range p.chords {
		if moved[c] {
			continue
		}
		// already checked above
		_ = c.Transpose(semitones)
		moved[c] = true
	}
	return nil
}

func (p *Progression) OctaveShift(octaves int) error {
	return p.Transpose(octaves * constants.OctaveSize)
}

func (p *Progression) String() string {
	var sb strings.Builder
	sb.WriteString("Key: ")
	sb.WriteString(p.key.String())
	for _, c := range p.chords {
		sb.WriteString(", ")
		sb.WriteString(c.String())
	}
	return sb.String()
}
