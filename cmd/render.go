package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/scorekit/config"
	"github.com/jsphweid/scorekit/harmony"
	"github.com/jsphweid/scorekit/midi"
	"github.com/jsphweid/scorekit/model"
	"github.com/jsphweid/scorekit/timeline"
	"github.com/jsphweid/scorekit/util"
	"github.com/spf13/cobra"
)

var renderOpts struct {
	out        string
	transpose  int
	start      uint64
	length     uint64
	velocity   uint8
	resolution uint16
}

func init() {
	rootCmd.AddCommand(renderCmd)
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.out, "out", "o", "", "output file, - for stdout (default <out_dir>/render.mid)")
	f.IntVarP(&renderOpts.transpose, "transpose", "t", 0, "semitones to transpose the progression by")
	f.Uint64Var(&renderOpts.start, "start", 0, "start tick; chord i starts at start*(i+1)")
	f.Uint64Var(&renderOpts.length, "length", 0, "length of each chord in ticks")
	f.Uint8Var(&renderOpts.velocity, "velocity", 0, "velocity of every note")
	f.Uint16Var(&renderOpts.resolution, "resolution", 0, "ticks per quarter note")
}

var renderCmd = &cobra.Command{
	Use:   "render <tonic> <mode> <degree>...",
	Short: "Renders a chord progression to a MIDI file",
	Long: `Builds a progression from the triads on the given scale degrees of a key,
optionally transposes it, and writes it to a Standard MIDI File.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := model.RenderRequestBody{
			Tonic:      args[0],
			Mode:       args[1],
			Transpose:  renderOpts.transpose,
			Start:      renderOpts.start,
			Length:     renderOpts.length,
			Velocity:   renderOpts.velocity,
			Resolution: renderOpts.resolution,
		}
		for _, arg := range args[2:] {
			degree, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("degree %q is not a number", arg)
			}
			req.Degrees = append(req.Degrees, degree)
		}

		tl, err := renderTimeline(withDefaults(req, cfg))
		if err != nil {
			return err
		}

		codec := midi.NewCodec(cfg.Logger)
		path := renderOpts.out
		if path == "-" {
			return codec.WriteEventStreamTo(cmd.OutOrStdout(), tl.Resolution(), tl.Encode())
		}
		if path == "" {
			if err := util.EnsureDir(cfg.OutDir); err != nil {
				return err
			}
			path = filepath.Join(cfg.OutDir, "render.mid")
		}
		if err := tl.Write(codec, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %v notes to %v\n", tl.Len(), path)
		return nil
	},
}

func withDefaults(req model.RenderRequestBody, c config.Config) model.RenderRequestBody {
	if req.Start == 0 {
		req.Start = c.Start
	}
	if req.Length == 0 {
		req.Length = c.ChordLength
	}
	if req.Velocity == 0 {
		req.Velocity = c.Velocity
	}
	if req.Resolution == 0 {
		req.Resolution = c.Resolution
	}
	return req
}

// renderTimeline builds the progression a render request describes and lays it
// out on a new timeline.
func renderTimeline(req model.RenderRequestBody) (*timeline.Timeline, error) {
	k, err := parseKey(req.Tonic, req.Mode)
	if err != nil {
		return nil, err
	}

	p := harmony.NewProgression(k)
	for _, degree := range req.Degrees {
		if _, err := p.AddChordByDegree(degree); err != nil {
			return nil, err
		}
	}
	if req.Transpose != 0 {
		if err := p.Transpose(req.Transpose); err != nil {
			return nil, err
		}
	}

	tl, err := timeline.New(req.Resolution)
	if err != nil {
		return nil, err
	}
	if err := tl.AddProgression(p, req.Start, req.Length, req.Velocity); err != nil {
		return nil, err
	}
	return tl, nil
}
