package game

import "errors"

var ErrInvalidOptions = errors.New("invalid room options")

// Reason explains a structural rejection. Rejected actions never change
// game state.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonEliminated       Reason = "actor is eliminated"
	ReasonNotVoting        Reason = "not a voting phase"
	ReasonNotMafia         Reason = "only mafia vote at night"
	ReasonAlreadyVoted     Reason = "already voted this phase"
	ReasonUnknownTarget    Reason = "no such player"
	ReasonSelfTarget       Reason = "cannot target yourself"
	ReasonTargetEliminated Reason = "target is eliminated"
	ReasonNotNightVoting   Reason = "choices are made during the night vote"
	ReasonNoAction         Reason = "role has no special action"
	ReasonAlreadyRevealed  Reason = "target already investigated"
	ReasonAlreadyChose     Reason = "already investigated this night"
	ReasonRepeatProtection Reason = "cannot protect the same player twice in a row"
	ReasonNoChatScope      Reason = "no chat at night"
	ReasonGameOver         Reason = "game is over"
)
