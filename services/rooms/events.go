package rooms

import (
	"time"

	"Mafia/services/game"
)

// Conn is the transport handle of one connected player. Join and Leave
// subscribe the connection to a broadcast scope of its room.
type Conn interface {
	Join(scope game.Scope)
	Leave(scope game.Scope)
	Emit(event string, args ...any)
}

// Broadcaster receives the events no client asked for: timer-driven phase
// changes and room expiry. Calls are made with the room lock held, in the
// order the events happened.
type Broadcaster interface {
	PhaseChanged(roomID string, update game.PhaseUpdate)
	RoomClosed(roomID string)
}

// Observer is told about room and game lifecycle, for statistics and
// archiving. Calls are made with the room lock held and must not block.
type Observer interface {
	RoomCreated(roomID string)
	GameStarted(roomID string, players int)
	GameEnded(result GameResult)
	RoomDestroyed(roomID string)
}

// GameResult describes a finished game.
type GameResult struct {
	RoomID    string
	Winner    game.Faction
	Turns     int
	Names     []string
	Roles     []game.Role
	Winners   []int
	StartedAt time.Time
	EndedAt   time.Time
}

type nopBroadcaster struct{}

func (nopBroadcaster) PhaseChanged(string, game.PhaseUpdate) {}
func (nopBroadcaster) RoomClosed(string)                     {}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) RoomCreated(string)      {}
func (NopObserver) GameStarted(string, int) {}
func (NopObserver) GameEnded(GameResult)    {}
func (NopObserver) RoomDestroyed(string)    {}
