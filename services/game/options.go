package game

import (
	"fmt"
	"time"
)

// Options is the immutable per-room configuration snapshot. Timeouts are in
// seconds, as they travel to clients.
type Options struct {
	MaxPlayers    int    `json:"maxPlayers"`
	MafiaCoeff    int    `json:"mafiaCoeff"`
	DayTimeout    int    `json:"dayTimeout"`
	NightTimeout  int    `json:"nightTimeout"`
	VoteTimeout   int    `json:"voteTimeout"`
	OptionalRoles []Role `json:"optionalRoles"`
}

func (o Options) Validate() error {
	if o.MaxPlayers < 1 {
		return fmt.Errorf("%w: maxPlayers must be positive, got %d", ErrInvalidOptions, o.MaxPlayers)
	}
	if o.MafiaCoeff < 1 {
		return fmt.Errorf("%w: mafiaCoeff must be positive, got %d", ErrInvalidOptions, o.MafiaCoeff)
	}
	if o.DayTimeout < 1 || o.NightTimeout < 1 || o.VoteTimeout < 1 {
		return fmt.Errorf("%w: phase timeouts must be positive", ErrInvalidOptions)
	}
	for _, r := range o.OptionalRoles {
		if !r.Optional() {
			return fmt.Errorf("%w: %q is not an optional role", ErrInvalidOptions, r)
		}
	}
	return nil
}

// Clone copies the role list so snapshots never alias the room's options.
func (o Options) Clone() Options {
	o.OptionalRoles = append([]Role(nil), o.OptionalRoles...)
	return o
}

// Timeout is how long phase p lasts.
func (o Options) Timeout(p Phase) time.Duration {
	seconds := o.NightTimeout
	switch {
	case p.IsVoting:
		seconds = o.VoteTimeout
	case p.IsDay:
		seconds = o.DayTimeout
	}
	return time.Duration(seconds) * time.Second
}
