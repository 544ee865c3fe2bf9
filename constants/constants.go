package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("SCOREKIT_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetConfigPath() string {
	return os.Getenv("SCOREKIT_CONFIG")
}

const (
	MinKey = 0
	MaxKey = 127

	// velocity 0 on a note-on means note-off
	MinVelocity = 1
	MaxVelocity = 127

	OctaveSize = 12
	MinOctave  = -1
	MaxOctave  = 9

	// SMF metric time formats only have 15 bits for ticks per quarter note.
	MaxResolution = 0x7FFF
)

const (
	DefaultResolution  = 480
	DefaultVelocity    = 100
	DefaultChordLength = 480
	DefaultStart       = 480
	DefaultListenAddr  = ":8080"
	DefaultLogLevel    = "info"
)
