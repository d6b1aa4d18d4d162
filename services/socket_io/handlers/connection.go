package handlers

import (
	socketio_types "Mafia/services/socket_io/types"
	"Mafia/utils/logger"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleLeaveGame takes the player out of their room on request.
func HandleLeaveGame(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, ok := sio.RemoveSession(client.Id())
		if !ok {
			return
		}
		leaveRoom(sio, session)
	}
}

// Function to handle socket.io client disconnections.
func HandleDisconnecting(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, ok := sio.RemoveSession(client.Id())
		if !ok {
			logger.Debugf("[DISCONNECT] Socket %s had no room", client.Id())
			return
		}
		logger.Debugf("[DISCONNECT] Socket %s leaves room %s", client.Id(), session.RoomID)
		leaveRoom(sio, session)
	}
}

// leaveRoom releases the session's player and tells the rest of the room.
func leaveRoom(sio *socketio_types.SocketServer, session socketio_types.Session) {
	room, ok := sio.Registry.Room(session.RoomID)
	if !ok {
		return
	}
	out, ok := room.Release(session.PlayerID, session.Conn)
	if !ok || out.RoomClosed {
		return
	}
	sio.Sio_server.To(socket.Room(session.RoomID)).Emit("playerLeft", socketio_types.PlayerLeftPayload(out))
}
