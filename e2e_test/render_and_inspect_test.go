//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/jsphweid/scorekit/cmd"
	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/midi"
	"github.com/jsphweid/scorekit/mode"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exitVal := m.Run()

	// renders land in the default out dir
	os.RemoveAll(constants.GetOutDir())
	os.Exit(exitVal)
}

func do(method string, target string, body io.Reader) (*http.Response, []byte) {
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody
}

func createRenderReqBody(req model.RenderRequestBody) io.Reader {
	data, err := json.Marshal(req)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func decode(t *testing.T, data []byte) *timeline.Timeline {
	t.Helper()
	resolution, events, err := midi.NewCodec(nil).ReadEventStreamFrom(bytes.NewReader(data))
	require.NoError(t, err)
	tl, err := timeline.Decode(resolution, events)
	require.NoError(t, err)
	return tl
}

func TestTwoFiveOneE2E(t *testing.T) {
	resp, data := do(http.MethodPost, "/render", createRenderReqBody(model.RenderRequestBody{
		Tonic:     "C4",
		Mode:      "major",
		Degrees:   []int{2, 5, 1},
		Transpose: -12,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tl := decode(t, data)
	assert.Equal(t, uint16(480), tl.Resolution())

	byStart := make(map[uint64][]uint8)
	for _, e := range tl.Events() {
		assert.Equal(t, uint64(480), e.Length())
		assert.Equal(t, uint8(100), e.Velocity())
		byStart[e.StartTick()] = append(byStart[e.StartTick()], e.Note().Key())
	}
	require.Len(t, byStart, 3)
	assert.ElementsMatch(t, []uint8{50, 53, 57}, byStart[480])
	assert.ElementsMatch(t, []uint8{55, 59, 62}, byStart[960])
	assert.ElementsMatch(t, []uint8{48, 52, 55}, byStart[1440])
}

func TestRenderFetchInspectE2E(t *testing.T) {
	resp, data := do(http.MethodPost, "/render", createRenderReqBody(model.RenderRequestBody{
		Tonic:      "E3",
		Mode:       "minor harmonic",
		Degrees:    []int{1, 4, 5, 1},
		Start:      240,
		Length:     120,
		Velocity:   64,
		Resolution: 240,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := resp.Header.Get("X-Render-Id")

	resp, fetched := do(http.MethodGet, "/render/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, data, fetched)

	resp, body := do(http.MethodPost, "/inspect", bytes.NewReader(fetched))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var inspected model.InspectResponse
	require.NoError(t, json.Unmarshal(body, &inspected))
	assert.Equal(t, uint16(240), inspected.Resolution)
	require.Len(t, inspected.Notes, 12)
	assert.Equal(t, uint64(240), inspected.Notes[0].Start)
	assert.Equal(t, uint64(960), inspected.Notes[len(inspected.Notes)-1].Start)
	for _, n := range inspected.Notes {
		assert.Equal(t, n.Start+120, n.End)
		assert.Equal(t, uint8(64), n.Velocity)
	}
}

// Every triad the scale endpoint reports should come back out of a render of that degree.
func TestScaleChordsRenderE2E(t *testing.T) {
	for _, m := range mode.All() {
		if m.IsChromatic() {
			continue
		}
		t.Run(m.String(), func(t *testing.T) {
			resp, body := do(http.MethodGet, "/scale?tonic=A3&mode="+url.QueryEscape(m.String()), nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var scale model.ScaleResponse
			require.NoError(t, json.Unmarshal(body, &scale))
			require.Len(t, scale.Chords, 7)

			for degree := 1; degree <= 7; degree++ {
				resp, data := do(http.MethodPost, "/render", createRenderReqBody(model.RenderRequestBody{
					Tonic:   "A3",
					Mode:    m.String(),
					Degrees: []int{degree},
				}))
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var names []string
				for _, e := range decode(t, data).Sorted() {
					names = append(names, e.Note().Name())
				}
				assert.ElementsMatch(t, scale.Chords[degree-1], names, "degree %d", degree)
			}
		})
	}
}
