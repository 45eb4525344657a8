package show

// Clip runs one effect for a fixed number of outer iterations.
type Clip struct {
	Effect     string `yaml:"effect" json:"effect"`
	Iterations int    `yaml:"iterations" json:"iterations"`
}

// Program is the fixed rotation of clips.
type Program struct {
	Clips []Clip `yaml:"clips" json:"clips"`
	Loop  bool   `yaml:"loop" json:"loop"`
}

// DefaultProgram is the rotation the cube ships with.
func DefaultProgram() Program {
	return Program{
		Loop: true,
		Clips: []Clip{
			{Effect: "rain", Iterations: 100},
			{Effect: "spiral", Iterations: 10},
			{Effect: "rain", Iterations: 50},
			{Effect: "planes", Iterations: 4},
		},
	}
}

// PlayerState enumerates player states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
)

// Hooks are optional observers of the rotation.
type Hooks struct {
	ClipStart func(index int, c Clip)
	ClipDone  func(index int, c Clip)
}
