package handlers

import (
	socketio_types "Mafia/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleGetNewPlayerID hands out a fresh player id.
func HandleGetNewPlayerID(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		client.Emit("playerIDReturned", sio.Identity.NewPlayerID())
	}
}
