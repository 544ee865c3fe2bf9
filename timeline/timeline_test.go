package timeline

import (
	"math"
	"sort"
	"testing"

	"github.com/jsphweid/scorekit/chord"
	"github.com/jsphweid/scorekit/harmony"
	"github.com/jsphweid/scorekit/mode"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimeline(t *testing.T) *Timeline {
	t.Helper()
	tl, err := New(480)
	require.NoError(t, err)
	return tl
}

func cMajor(t *testing.T) *chord.Chord {
	t.Helper()
	c, err := chord.New(note.MustNew(60)).AppendMajorTriad()
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadResolution(t *testing.T) {
	t.Parallel()

	for _, res := range []uint16{0, 0x8000, 0xFFFF} {
		_, err := New(res)
		assert.ErrorIs(t, err, model.ErrInvalidArgument, "resolution %d", res)
	}
}

func TestNewNoteEvent(t *testing.T) {
	t.Parallel()

	_, err := NewNoteEvent(note.MustNew(60), 10, 9, 100)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = NewNoteEvent(note.MustNew(60), 0, 10, 128)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = NewNoteEvent(note.MustNew(60), 0, 10, 0)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	e, err := NewNoteEvent(note.MustNew(60), 5, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), e.Length())

	assert.ErrorIs(t, e.SetVelocity(200), model.ErrInvalidArgument)
	assert.ErrorIs(t, e.SetVelocity(0), model.ErrInvalidArgument)
	assert.Equal(t, uint8(1), e.Velocity())
	assert.ErrorIs(t, e.SetTicks(8, 7), model.ErrInvalidArgument)
	require.NoError(t, e.SetTicks(7, 8))
	assert.Equal(t, "C4 [7, 8) vel 1", e.String())

	tl := newTimeline(t)
	assert.ErrorIs(t, tl.AddNote(note.MustNew(60), 0, 480, 0), model.ErrInvalidArgument)
	assert.Equal(t, 0, tl.Len())
}

func TestAddChordSharesTiming(t *testing.T) {
	t.Parallel()

	tl := newTimeline(t)
	require.NoError(t, tl.AddChord(cMajor(t), 960, 480, 90))

	events := tl.Events()
	require.Len(t, events, 3)
	for i, key := range []uint8{60, 64, 67} {
		assert.Equal(t, key, events[i].Note().Key())
		assert.Equal(t, uint64(960), events[i].StartTick())
		assert.Equal(t, uint64(1440), events[i].EndTick())
		assert.Equal(t, uint8(90), events[i].Velocity())
	}

	assert.ErrorIs(t, tl.AddChord(cMajor(t), 0, 1, 130), model.ErrInvalidArgument)
	assert.Equal(t, 3, tl.Len())
}

func TestAddProgressionSpacingIsMultiplicative(t *testing.T) {
	t.Parallel()

	k, err := harmony.NewKey(mode.Ionian, note.MustNew(60))
	require.NoError(t, err)
	p := harmony.NewProgression(k)
	for _, d := range []int{1, 4, 5} {
		_, err := p.AddChordByDegree(d)
		require.NoError(t, err)
	}

	tl := newTimeline(t)
	require.NoError(t, tl.AddProgression(p, 480, 240, 100))
	require.Equal(t, 9, tl.Len())

	events := tl.Events()
	for i, want := range []uint64{480, 960, 1440} {
		for j := 0; j < 3; j++ {
			e := events[i*3+j]
			assert.Equal(t, want, e.StartTick())
			assert.Equal(t, want+240, e.EndTick())
		}
	}

	zero := newTimeline(t)
	require.NoError(t, zero.AddProgression(p, 0, 240, 100))
	for _, e := range zero.Events() {
		assert.Equal(t, uint64(0), e.StartTick())
	}
}

func TestAddProgressionRejectsTickOverflow(t *testing.T) {
	t.Parallel()

	k, err := harmony.NewKey(mode.Ionian, note.MustNew(60))
	require.NoError(t, err)
	p := harmony.NewProgression(k)
	for _, d := range []int{1, 5} {
		_, err := p.AddChordByDegree(d)
		require.NoError(t, err)
	}

	tl := newTimeline(t)
	// chord 1 would start at 2^64
	assert.ErrorIs(t, tl.AddProgression(p, 1<<63, 10, 100), model.ErrInvalidArgument)
	assert.Equal(t, 0, tl.Len())

	// chord 1 fits but does not end
	assert.ErrorIs(t, tl.AddProgression(p, math.MaxUint64/2, math.MaxUint64/2, 100), model.ErrInvalidArgument)
	assert.Equal(t, 0, tl.Len())

	assert.ErrorIs(t, tl.AddNote(note.MustNew(60), math.MaxUint64, 1, 100), model.ErrInvalidArgument)
	assert.ErrorIs(t, tl.AddChord(cMajor(t), 10, math.MaxUint64, 100), model.ErrInvalidArgument)
	assert.Equal(t, 0, tl.Len())

	require.NoError(t, tl.AddNote(note.MustNew(60), math.MaxUint64-1, 1, 100))
	assert.Equal(t, uint64(math.MaxUint64), tl.End())
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tl := newTimeline(t)
	require.NoError(t, tl.AddNote(note.MustNew(72), 480, 480, 64))
	require.NoError(t, tl.AddNote(note.MustNew(60), 0, 960, 100))

	assert.Equal(t, []model.Event{
		{Kind: model.On, Key: 60, Tick: 0, Velocity: 100},
		{Kind: model.On, Key: 72, Tick: 480, Velocity: 64},
		{Kind: model.Off, Key: 72, Tick: 960, Velocity: 64},
		{Kind: model.Off, Key: 60, Tick: 960, Velocity: 100},
	}, tl.Encode())

	// the backing list is untouched by encoding
	first, err := tl.At(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(72), first.Note().Key())
}

type byStartThenKey []NoteEvent

func (s byStartThenKey) Len() int      { return len(s) }
func (s byStartThenKey) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byStartThenKey) Less(i, j int) bool {
	if s[i].StartTick() != s[j].StartTick() {
		return s[i].StartTick() < s[j].StartTick()
	}
	return s[i].Note().Key() < s[j].Note().Key()
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	tl := newTimeline(t)
	require.NoError(t, tl.AddChord(cMajor(t), 0, 480, 100))
	require.NoError(t, tl.AddNote(note.MustNew(60), 480, 480, 80))
	require.NoError(t, tl.AddNote(note.MustNew(48), 0, 1920, 70))
	require.NoError(t, tl.AddNote(note.MustNew(67), 960, 0, 50))

	decoded, err := Decode(tl.Resolution(), tl.Encode())
	require.NoError(t, err)
	assert.Equal(t, tl.Resolution(), decoded.Resolution())

	want := tl.Events()
	got := decoded.Events()
	sort.Sort(byStartThenKey(want))
	sort.Sort(byStartThenKey(got))
	assert.Equal(t, want, got)
}

func TestDecodeOverlappingNotesPairFirstInFirstOut(t *testing.T) {
	t.Parallel()

	tl, err := Decode(480, []model.Event{
		{Kind: model.On, Key: 60, Tick: 0, Velocity: 10},
		{Kind: model.On, Key: 60, Tick: 100, Velocity: 20},
		{Kind: model.Off, Key: 60, Tick: 200},
		{Kind: model.Off, Key: 60, Tick: 300},
	})
	require.NoError(t, err)

	events := tl.Events()
	require.Len(t, events, 2)
	assert.Equal(t, uint64(0), events[0].StartTick())
	assert.Equal(t, uint64(200), events[0].EndTick())
	assert.Equal(t, uint8(10), events[0].Velocity())
	assert.Equal(t, uint64(100), events[1].StartTick())
	assert.Equal(t, uint64(300), events[1].EndTick())
	assert.Equal(t, uint8(20), events[1].Velocity())
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name   string
		events []model.Event
	}{
		{"note-off never turned on", []model.Event{
			{Kind: model.On, Key: 60, Tick: 0},
			{Kind: model.Off, Key: 62, Tick: 10},
		}},
		{"note-on never ended", []model.Event{
			{Kind: model.On, Key: 60, Tick: 0},
			{Kind: model.On, Key: 64, Tick: 0},
			{Kind: model.Off, Key: 60, Tick: 10},
		}},
		{"ticks go backwards", []model.Event{
			{Kind: model.On, Key: 60, Tick: 10},
			{Kind: model.Off, Key: 60, Tick: 5},
		}},
		{"key out of range", []model.Event{
			{Kind: model.On, Key: 200, Tick: 0},
		}},
		{"unknown kind", []model.Event{
			{Kind: model.EventKind(7), Key: 60, Tick: 0},
		}},
		{"velocity out of range", []model.Event{
			{Kind: model.On, Key: 60, Tick: 0, Velocity: 255},
			{Kind: model.Off, Key: 60, Tick: 1},
		}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(480, c.events)
			assert.ErrorIs(t, err, model.ErrStream)
		})
	}

	_, err := Decode(0, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestDecodeEmptyStream(t *testing.T) {
	t.Parallel()

	tl, err := Decode(96, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tl.Len())
	assert.Equal(t, uint16(96), tl.Resolution())
}

func TestSortedIsOnlyAView(t *testing.T) {
	t.Parallel()

	tl := newTimeline(t)
	require.NoError(t, tl.AddNote(note.MustNew(64), 960, 10, 1))
	require.NoError(t, tl.AddNote(note.MustNew(62), 480, 10, 1))
	require.NoError(t, tl.AddNote(note.MustNew(60), 0, 10, 1))

	sorted := tl.Sorted()
	assert.Equal(t, uint8(60), sorted[0].Note().Key())
	assert.Equal(t, uint8(64), sorted[2].Note().Key())

	events := tl.Events()
	assert.Equal(t, uint8(64), events[0].Note().Key())
	assert.Equal(t, uint8(60), events[2].Note().Key())

	assert.Equal(t, "Timeline [resolution: 480, C4 [0, 10) vel 1, D4 [480, 490) vel 1, E4 [960, 970) vel 1]", tl.String())
	assert.Equal(t, uint64(970), tl.End())
}

func TestRemoveAndModify(t *testing.T) {
	t.Parallel()

	tl := newTimeline(t)
	require.NoError(t, tl.AddChord(cMajor(t), 0, 100, 100))

	require.NoError(t, tl.RemoveAt(1))
	assert.Equal(t, 2, tl.Len())
	assert.ErrorIs(t, tl.RemoveAt(2), model.ErrIndex)
	assert.ErrorIs(t, tl.RemoveAt(-1), model.ErrIndex)

	require.NoError(t, tl.ModifyAt(1, func(e *NoteEvent) error {
		return e.SetVelocity(20)
	}))
	e, err := tl.At(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(67), e.Note().Key())
	assert.Equal(t, uint8(20), e.Velocity())

	err = tl.ModifyAt(0, func(e *NoteEvent) error {
		e.SetNote(note.MustNew(1))
		return e.SetVelocity(128)
	})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	e, _ = tl.At(0)
	assert.Equal(t, uint8(60), e.Note().Key())

	assert.ErrorIs(t, tl.ModifyAt(5, func(e *NoteEvent) error { return nil }), model.ErrIndex)
	_, err = tl.At(5)
	assert.ErrorIs(t, err, model.ErrIndex)
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	tl := newTimeline(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, tl.AddNote(note.MustNew(50+i), uint64(900-100*i), 50, 100))
	}

	ex := tl.Excerpt(250, 3)
	require.Equal(t, 3, ex.Len())
	assert.Equal(t, tl.Resolution(), ex.Resolution())
	for i, start := range []uint64{300, 400, 500} {
		e, _ := ex.At(i)
		assert.Equal(t, start, e.StartTick())
	}

	assert.Equal(t, 7, tl.Excerpt(250, 0).Len())
	assert.Equal(t, 7, tl.Excerpt(250, -1).Len())
	assert.Equal(t, 10, tl.Len())
}
