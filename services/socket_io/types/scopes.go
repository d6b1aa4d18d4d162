package socketio_types

import (
	"Mafia/services/game"

	"github.com/zishang520/socket.io/v2/socket"
)

// ScopeRoom names the socket.io room backing a broadcast scope: the room id
// itself, "<id>_m" for the mafia and "<id>_e" for eliminated players.
func ScopeRoom(roomID string, scope game.Scope) socket.Room {
	switch scope {
	case game.ScopeMafia:
		return socket.Room(roomID + "_m")
	case game.ScopeEliminated:
		return socket.Room(roomID + "_e")
	default:
		return socket.Room(roomID)
	}
}

// SocketConn lets a room subscribe one socket to its scopes.
type SocketConn struct {
	Client *socket.Socket
	RoomID string
}

func (c *SocketConn) Join(scope game.Scope) {
	c.Client.Join(ScopeRoom(c.RoomID, scope))
}

func (c *SocketConn) Leave(scope game.Scope) {
	c.Client.Leave(ScopeRoom(c.RoomID, scope))
}

func (c *SocketConn) Emit(event string, args ...any) {
	c.Client.Emit(event, args...)
}
