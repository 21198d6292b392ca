package automaton

// ConcatAutomaton matches an exact byte prefix and then delegates to a
// second acceptor for the remainder of the input. Used for prefix-anchored
// fuzzy matching, where the fixed prefix is matched exactly and the
// Levenshtein acceptor covers the suffix.
//
// State encoding: states 1..len(prefix) consume the prefix; beyond that,
// states are the rest automaton's states shifted by len(prefix).
type ConcatAutomaton struct {
	prefix []byte
	rest   Automaton
}

// Concat returns an automaton accepting prefix followed by any input rest
// accepts. An empty prefix returns rest unchanged.
func Concat(prefix []byte, rest Automaton) Automaton {
	if len(prefix) == 0 {
		return rest
	}
	return &ConcatAutomaton{prefix: prefix, rest: rest}
}

func (a *ConcatAutomaton) shift() State {
	return State(len(a.prefix))
}

func (a *ConcatAutomaton) Start() State {
	return 1
}

func (a *ConcatAutomaton) Step(state State, b byte) State {
	if state == DeadState {
		return DeadState
	}
	n := a.shift()
	if state <= n {
		pos := int(state) - 1
		if b != a.prefix[pos] {
			return DeadState
		}
		if pos == len(a.prefix)-1 {
			// Prefix consumed; enter the rest automaton at its start.
			r := a.rest.Start()
			if r == DeadState {
				return DeadState
			}
			return n + r
		}
		return state + 1
	}
	r := a.rest.Step(state-n, b)
	if r == DeadState {
		return DeadState
	}
	return n + r
}

func (a *ConcatAutomaton) IsAccept(state State) bool {
	n := a.shift()
	if state == DeadState || state <= n {
		return false
	}
	return a.rest.IsAccept(state - n)
}

func (a *ConcatAutomaton) CanMatch(state State) bool {
	if state == DeadState {
		return false
	}
	if n := a.shift(); state > n {
		return a.rest.CanMatch(state - n)
	}
	return true
}
