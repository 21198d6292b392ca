package automaton

// StringAutomaton accepts exactly one byte string and nothing else.
//
// States: 1..len(str)+1, where state len(str)+1 is the sole accepting state
// with no outgoing transitions.
type StringAutomaton struct {
	str []byte
}

// NewStringAutomaton creates an automaton accepting exactly str.
func NewStringAutomaton(str []byte) *StringAutomaton {
	return &StringAutomaton{str: str}
}

func (a *StringAutomaton) Start() State {
	return 1
}

func (a *StringAutomaton) Step(state State, b byte) State {
	if state == DeadState {
		return DeadState
	}
	pos := int(state) - 1
	if pos < len(a.str) && b == a.str[pos] {
		return state + 1
	}
	return DeadState
}

func (a *StringAutomaton) IsAccept(state State) bool {
	return int(state)-1 == len(a.str) && state != DeadState
}

func (a *StringAutomaton) CanMatch(state State) bool {
	return state != DeadState
}
