package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/scorekit/midi"
	"github.com/jsphweid/scorekit/note"
	"github.com/jsphweid/scorekit/timeline"
	"github.com/jsphweid/scorekit/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <file or dir>...",
	Short: "Summarizes MIDI files",
	Long: `Reads every MIDI file given (directories are searched recursively) and
prints note counts, ranges and pitch class totals.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := gatherPaths(args)
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), paths)
		return nil
	},
}

type fileReport struct {
	numNotes     int
	resolution   uint16
	endTick      uint64
	lowest       uint8
	highest      uint8
	pitchClasses map[int]int
}

func gatherPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := util.GatherAllMidiPaths(arg, 0)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func analyze(tl *timeline.Timeline) fileReport {
	r := fileReport{
		numNotes:     tl.Len(),
		resolution:   tl.Resolution(),
		endTick:      tl.End(),
		lowest:       127,
		pitchClasses: make(map[int]int),
	}
	for _, e := range tl.Events() {
		n := e.Note()
		r.lowest = util.Min(r.lowest, n.Key())
		r.highest = util.Max(r.highest, n.Key())
		r.pitchClasses[n.PitchClass()] += 1
	}
	return r
}

func report(w io.Writer, paths []string) {
	log := cfg.Logger
	codec := midi.NewCodec(log)

	var numSkipped int
	var noteCounts []int
	totals := make(map[int]int)
	for i, path := range paths {
		log.Debugf("Processing %v of %v midi files", i+1, len(paths))
		tl, err := timeline.Read(codec, path)
		if err != nil {
			log.Warnf("Skipping %v because: %v", path, err)
			numSkipped += 1
			continue
		}

		r := analyze(tl)
		noteCounts = append(noteCounts, r.numNotes)
		fmt.Fprintln(w, headingStyle.Render(path))
		fmt.Fprintf(w, "  resolution: %v\n", r.resolution)
		fmt.Fprintf(w, "  notes: %v\n", r.numNotes)
		fmt.Fprintf(w, "  end tick: %v\n", r.endTick)
		if r.numNotes > 0 {
			fmt.Fprintf(w, "  range: %v to %v\n", note.MustNew(int(r.lowest)), note.MustNew(int(r.highest)))
		}
		for class, count := range r.pitchClasses {
			totals[class] += count
		}
	}

	fmt.Fprintln(w, headingStyle.Render("total"))
	fmt.Fprintf(w, "  files: %v (skipped %v)\n", len(noteCounts), numSkipped)
	fmt.Fprintf(w, "  notes: %v\n", util.Sum(noteCounts))
	for _, class := range util.GetKeys(totals) {
		fmt.Fprintf(w, "  %-2v %v\n", note.Names[class], totals[class])
	}
}
