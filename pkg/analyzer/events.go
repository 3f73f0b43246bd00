package analyzer

// Stage identifies the processing stage at which a file or function was
// skipped.
type Stage string

const (
	StageRead         Stage = "read"
	StageParse        Stage = "parse"
	StageExtract      Stage = "extract"
	StageRender       Stage = "render"
	StageCanonicalize Stage = "canonicalize"
)

// Event records a skipped unit of work. Analyses carry the events they
// accumulated so partial failures are visible to the caller without any
// logging side channel.
type Event struct {
	File     string `json:"file"`
	Function string `json:"function,omitempty"`
	Stage    Stage  `json:"stage"`
	Message  string `json:"message"`
}

// NewEvent builds an event from an error.
func NewEvent(file, function string, stage Stage, err error) Event {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Event{File: file, Function: function, Stage: stage, Message: msg}
}
