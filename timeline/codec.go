package timeline

import "github.com/jsphweid/scorekit/model"

// Codec reads and writes event streams from files. The midi package has the SMF one.
type Codec interface {
	// ReadEventStream returns the file's ticks per quarter note and its
	// note events in ascending tick order.
	ReadEventStream(path string) (uint16, []model.Event, error)

	// WriteEventStream expects events in ascending tick order.
	WriteEventStream(path string, resolution uint16, events []model.Event) error
}

// Read decodes a file into a new timeline.
func Read(codec Codec, path string) (*Timeline, error) {
	resolution, events, err := codec.ReadEventStream(path)
	if err != nil {
		return nil, err
	}
	return Decode(resolution, events)
}

func (t *Timeline) Write(codec Codec, path string) error {
	return codec.WriteEventStream(path, t.resolution, t.Encode())
}
