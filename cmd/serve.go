package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/scorekit/midi"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/timeline"
	"github.com/jsphweid/scorekit/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const midiContentType = "audio/midi"

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves scales and renders over HTTP",
	Long: `Serves GET /scale, POST /render, GET /render/{id} and POST /inspect.
Rendered files are kept in the configured out_dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scale", HandleScale).Methods("GET")
	router.HandleFunc("/render", HandleRender).Methods("POST")
	router.HandleFunc("/render/{id}", HandleGetRender).Methods("GET")
	router.HandleFunc("/inspect", HandleInspect).Methods("POST")
	return router
}

func serve() error {
	if err := util.EnsureDir(cfg.OutDir); err != nil {
		return err
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(NewRouter())

	cfg.Logger.Infof("Listening on %v", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, handler)
}

// statusFor maps model errors to 400 and anything else to 500.
func statusFor(err error) int {
	for _, target := range []error{model.ErrRange, model.ErrInvalidArgument, model.ErrIndex} {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		cfg.Logger.Errorf("request failed: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func HandleScale(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	k, err := parseKey(q.Get("tonic"), q.Get("mode"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	res := model.ScaleResponse{Tonic: k.Tonic().Name(), Mode: k.Mode().String()}
	for _, n := range k.Scale().Notes() {
		res.Notes = append(res.Notes, n.Name())
	}
	if chords := k.Scale().Chords(); chords != nil {
		for _, c := range chords.Chords() {
			var names []string
			for _, n := range c.Notes() {
				names = append(names, n.Name())
			}
			res.Chords = append(res.Chords, names)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	var input model.RenderRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("could not read request body: "+err.Error()))
		return
	}
	if len(input.Degrees) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("at least one degree is needed"))
		return
	}

	tl, err := renderTimeline(withDefaults(input, cfg))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	if err := util.EnsureDir(cfg.OutDir); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	id := uuid.New().String()
	path := filepath.Join(cfg.OutDir, id+".mid")
	if err := tl.Write(midi.NewCodec(cfg.Logger), path); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("X-Render-Id", id)
	serveFile(w, path)
}

func HandleGetRender(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("not a render id"))
		return
	}
	serveFile(w, filepath.Join(cfg.OutDir, id.String()+".mid"))
}

func serveFile(w http.ResponseWriter, path string) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		writeError(w, http.StatusNotFound, errors.New("no such render"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", midiContentType)
	if _, err := io.Copy(w, f); err != nil {
		cfg.Logger.Errorf("could not send %v: %v", path, err)
	}
}

// HandleInspect decodes a MIDI file posted as the request body.
func HandleInspect(w http.ResponseWriter, r *http.Request) {
	resolution, events, err := midi.NewCodec(cfg.Logger).ReadEventStreamFrom(r.Body)
	if err != nil {
		status := http.StatusInternalServerError
		if midi.IsFormatError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	tl, err := timeline.Decode(resolution, events)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := model.InspectResponse{Resolution: tl.Resolution(), Notes: []model.NoteResponse{}}
	for _, e := range tl.Sorted() {
		res.Notes = append(res.Notes, model.NoteResponse{
			Name:     e.Note().Name(),
			Key:      e.Note().Key(),
			Start:    e.StartTick(),
			End:      e.EndTick(),
			Velocity: e.Velocity(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
