package model

type ScaleResponse struct {
	Tonic  string     `json:"tonic"`
	Mode   string     `json:"mode"`
	Notes  []string   `json:"notes"`
	Chords [][]string `json:"chords,omitempty"`
}

type RenderRequestBody struct {
	Tonic      string `json:"tonic"`
	Mode       string `json:"mode"`
	Degrees    []int  `json:"degrees"`
	Transpose  int    `json:"transpose"`
	Start      uint64 `json:"start"`
	Length     uint64 `json:"length"`
	Velocity   uint8  `json:"velocity"`
	Resolution uint16 `json:"resolution"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type NoteResponse struct {
	Name     string `json:"name"`
	Key      uint8  `json:"key"`
	Start    uint64 `json:"start"`
	End      uint64 `json:"end"`
	Velocity uint8  `json:"velocity"`
}

type InspectResponse struct {
	Resolution uint16         `json:"resolution"`
	Notes      []NoteResponse `json:"notes"`
}
