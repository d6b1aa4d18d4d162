package game

import "fmt"

// Phase is the composite game state sent to clients as "state".
type Phase struct {
	IsDay    bool `json:"isDay"`
	IsVoting bool `json:"isVoting"`
	Turn     int  `json:"turn"`
}

// InitialPhase is the mafia introduction night.
func InitialPhase() Phase {
	return Phase{}
}

// skipsVote is true for the intro night and the first day, which flip
// straight to the opposite half of the cycle.
func (p Phase) skipsVote() bool {
	return p.Turn == 0 || (p.Turn == 1 && p.IsDay)
}

// next is the phase that follows p, vote processing aside.
func (p Phase) next() Phase {
	switch {
	case p.IsVoting:
		p.IsVoting = false
		p.IsDay = !p.IsDay
	case p.skipsVote():
		p.IsDay = !p.IsDay
	default:
		p.IsVoting = true
	}
	if p.IsDay && !p.IsVoting {
		p.Turn++
	}
	return p
}

func (p Phase) String() string {
	half := "night"
	if p.IsDay {
		half = "day"
	}
	if p.IsVoting {
		return fmt.Sprintf("%s %d vote", half, p.Turn)
	}
	return fmt.Sprintf("%s %d", half, p.Turn)
}
