// Package display holds the single piece of text a hello page shows and
// the two ways it can settle.
package display

// LoadingText is the display text before the request settles.
const LoadingText = "Loading..."

// ErrorPrefix is prepended to the failure description on error.
const ErrorPrefix = "Error: "

// Phase is the lifecycle position of a State.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseDisplayed
	PhaseErrorDisplayed
)

// String returns a lowercase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseDisplayed:
		return "displayed"
	case PhaseErrorDisplayed:
		return "error_displayed"
	default:
		return "unknown"
	}
}

// State is the display state of one mounted page. The zero value is not
// usable; call NewState.
//
// A State moves from PhaseLoading to exactly one terminal phase. Once
// settled, further Show/Fail calls are ignored and report false.
type State struct {
	phase Phase
	text  string
}

// NewState returns a State showing LoadingText.
func NewState() State {
	return State{phase: PhaseLoading, text: LoadingText}
}

// Phase returns the current phase.
func (s State) Phase() Phase { return s.phase }

// Text returns the string to render.
func (s State) Text() string { return s.text }

// Settled reports whether the state has left PhaseLoading.
func (s State) Settled() bool { return s.phase != PhaseLoading }

// Show settles the state with the server's message.
func (s *State) Show(message string) bool {
	if s.Settled() {
		return false
	}
	s.phase = PhaseDisplayed
	s.text = message
	return true
}

// Fail settles the state with ErrorPrefix followed by description.
func (s *State) Fail(description string) bool {
	if s.Settled() {
		return false
	}
	s.phase = PhaseErrorDisplayed
	s.text = ErrorPrefix + description
	return true
}
