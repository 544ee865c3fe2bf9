package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/scorekit/harmony"
	"github.com/jsphweid/scorekit/mode"
	"github.com/jsphweid/scorekit/note"
	"github.com/spf13/cobra"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	degreeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func init() {
	rootCmd.AddCommand(scaleCmd)
}

var scaleCmd = &cobra.Command{
	Use:   "scale <tonic> [mode]",
	Short: "Prints a scale and its triads",
	Long: `Prints the notes of the scale for a key and, unless the mode is chromatic,
the triad on each degree. The tonic is a note name like C4 or F#3 or a MIDI key.
The mode defaults to ionian.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName := ""
		if len(args) == 2 {
			modeName = args[1]
		}
		k, err := parseKey(args[0], modeName)
		if err != nil {
			return err
		}
		printScale(cmd.OutOrStdout(), k)
		return nil
	},
}

func parseKey(tonic string, modeName string) (*harmony.Key, error) {
	if tonic == "" {
		tonic = "C4"
	}
	if modeName == "" {
		modeName = mode.Ionian.String()
	}
	n, err := note.Parse(tonic)
	if err != nil {
		return nil, err
	}
	m, err := mode.Parse(modeName)
	if err != nil {
		return nil, err
	}
	return harmony.NewKey(m, n)
}

func printScale(w io.Writer, k *harmony.Key) {
	fmt.Fprintln(w, headingStyle.Render(k.String()))
	fmt.Fprintln(w, k.Scale().String())

	chords := k.Scale().Chords()
	if chords == nil {
		return
	}
	for i, c := range chords.Chords() {
		names := make([]string, 0, c.Len())
		for _, n := range c.Notes() {
			names = append(names, n.Name())
		}
		fmt.Fprintf(w, "%s %s\n", degreeStyle.Render(fmt.Sprintf("%d:", i+1)), strings.Join(names, " "))
	}
}
