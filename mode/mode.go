package mode

import (
	"fmt"
	"strings"

	"github.com/jsphweid/scorekit/model"
)

// Mode is a named pattern of semitone steps. Every pattern climbs exactly one octave.
type Mode int

const (
	Ionian Mode = iota
	Dorian
	Phrygian
	Lydian
	Mixolydian
	Aeolian
	Locrian
	// Major is the same pattern as Ionian.
	Major
	// MinorNatural is the same pattern as Aeolian.
	MinorNatural
	// MinorHarmonic is the natural minor with a raised 7th.
	MinorHarmonic
	// Chromatic is for progressions without a key. It cannot be harmonized.
	Chromatic
)

type definition struct {
	name  string
	steps []int
}

var definitions = [...]definition{
	Ionian:        {"Ionian", []int{2, 2, 1, 2, 2, 2, 1}},
	Dorian:        {"Dorian", []int{2, 1, 2, 2, 2, 1, 2}},
	Phrygian:      {"Phrygian", []int{1, 2, 2, 2, 1, 2, 2}},
	Lydian:        {"Lydian", []int{2, 2, 2, 1, 2, 2, 1}},
	Mixolydian:    {"Mixolydian", []int{2, 2, 1, 2, 2, 1, 2}},
	Aeolian:       {"Aeolian", []int{2, 1, 2, 2, 1, 2, 2}},
	Locrian:       {"Locrian", []int{1, 2, 2, 1, 2, 2, 2}},
	Major:         {"Major", []int{2, 2, 1, 2, 2, 2, 1}},
	MinorNatural:  {"MinorNatural", []int{2, 1, 2, 2, 1, 2, 2}},
	MinorHarmonic: {"MinorHarmonic", []int{2, 1, 2, 2, 1, 3, 1}},
	Chromatic:     {"Chromatic", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
}

func All() []Mode {
	res := make([]Mode, len(definitions))
	for i := range definitions {
		res[i] = Mode(i)
	}
	return res
}

func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(definitions)
}

// Steps returns a copy of the mode's semitone steps.
func (m Mode) Steps() []int {
	if !m.Valid() {
		return nil
	}
	steps := definitions[m].steps
	res := make([]int, len(steps))
	copy(res, steps)
	return res
}

func (m Mode) IsChromatic() bool {
	return m == Chromatic
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return definitions[m].name
}

func normalize(s string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(s))
}

// Parse looks a mode up by name, ignoring case, spaces, dashes and underscores.
// "minor" is accepted as MinorNatural.
func Parse(s string) (Mode, error) {
	want := normalize(s)
	if want == "minor" {
		return MinorNatural, nil
	}
	for i, d := range definitions {
		if normalize(d.name) == want {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q: %w", s, model.ErrInvalidArgument)
}
