package rooms

import (
	"errors"

	"Mafia/services/game"
)

var (
	ErrRoomUnknown      = errors.New("room does not exist")
	ErrIDSpaceExhausted = errors.New("could not allocate a free room id")
	ErrNoPlayerID       = errors.New("player id is required")
	ErrNotMember        = errors.New("player is not connected to this room")
	ErrNotOwner         = errors.New("only the room owner can start the game")
	ErrAlreadyStarted   = errors.New("a game is already in progress")
)

// Rejections decided by the room before the game sees the action.
const (
	ReasonNoGame         game.Reason = "no game in progress"
	ReasonRateLimited    game.Reason = "too many messages"
	ReasonEmptyMessage   game.Reason = "empty message"
	ReasonMessageTooLong game.Reason = "message too long"
)
