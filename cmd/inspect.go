package cmd

import (
	"fmt"

	"github.com/jsphweid/scorekit/midi"
	"github.com/jsphweid/scorekit/timeline"
	"github.com/spf13/cobra"
)

var inspectOpts struct {
	from  uint64
	limit int
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Uint64Var(&inspectOpts.from, "from", 0, "only show notes starting at or after this tick")
	inspectCmd.Flags().IntVar(&inspectOpts.limit, "limit", 0, "show at most this many notes (0 or less for all)")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Lists the notes in a MIDI file",
	Long:  `Reads a MIDI file, pairs its note-ons and note-offs and lists the notes by start tick.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, err := timeline.Read(midi.NewCodec(cfg.Logger), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		excerpt := tl.Excerpt(inspectOpts.from, inspectOpts.limit)
		fmt.Fprintf(out, "resolution: %v\n", tl.Resolution())
		fmt.Fprintf(out, "notes: %v of %v\n", excerpt.Len(), tl.Len())
		for _, e := range excerpt.Events() {
			fmt.Fprintf(out, "%8d %8d %-4v vel %3d\n", e.StartTick(), e.EndTick(), e.Note(), e.Velocity())
		}
		return nil
	},
}
