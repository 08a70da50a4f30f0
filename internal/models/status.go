package models

// GrantStatus is the lifecycle state of a grant:
// identified → applying → submitted → awarded | rejected; awarded → reporting → closed.
type GrantStatus string

const (
	StatusIdentified GrantStatus = "identified"
	StatusApplying   GrantStatus = "applying"
	StatusSubmitted  GrantStatus = "submitted"
	StatusAwarded    GrantStatus = "awarded"
	StatusRejected   GrantStatus = "rejected"
	StatusReporting  GrantStatus = "reporting"
	StatusClosed     GrantStatus = "closed"
)

// nextStates is the canonical transition graph. Rejected and closed are terminal.
var nextStates = map[GrantStatus][]GrantStatus{
	StatusIdentified: {StatusApplying},
	StatusApplying:   {StatusSubmitted},
	StatusSubmitted:  {StatusAwarded, StatusRejected},
	StatusAwarded:    {StatusReporting},
	StatusReporting:  {StatusClosed},
}

func (s GrantStatus) Valid() bool {
	_, ok := nextStates[s]
	return ok || s == StatusRejected || s == StatusClosed
}

// CanTransitionTo reports whether moving to next follows the canonical graph.
// The tracker does not refuse out-of-graph moves; it logs them.
func (s GrantStatus) CanTransitionTo(next GrantStatus) bool {
	for _, n := range nextStates[s] {
		if n == next {
			return true
		}
	}
	return false
}

func (s GrantStatus) Terminal() bool {
	return s == StatusRejected || s == StatusClosed
}

// GrantType classifies the funding source.
type GrantType string

const (
	TypeFederal    GrantType = "federal"
	TypeState      GrantType = "state"
	TypePrivate    GrantType = "private"
	TypeFoundation GrantType = "foundation"
)

func (t GrantType) Valid() bool {
	switch t {
	case TypeFederal, TypeState, TypePrivate, TypeFoundation:
		return true
	}
	return false
}
