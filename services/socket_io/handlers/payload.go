package handlers

import (
	"encoding/json"
	"errors"

	socketio_types "Mafia/services/socket_io/types"
	"Mafia/services/rooms"
	"Mafia/utils/logger"

	"github.com/zishang520/socket.io/v2/socket"
)

var errMissingPayload = errors.New("missing payload")

// decodeArgs fills v from the first event argument, which socket.io hands
// over as generic JSON values.
func decodeArgs(args []interface{}, v interface{}) error {
	if len(args) < 1 || args[0] == nil {
		return errMissingPayload
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// sessionRoom resolves the room behind an acknowledged socket. Events from
// sockets that never sent ackRoom are ignored.
func sessionRoom(sio *socketio_types.SocketServer, client *socket.Socket) (*rooms.Room, socketio_types.Session, bool) {
	session, ok := sio.GetSession(client.Id())
	if !ok {
		return nil, session, false
	}
	room, ok := sio.Registry.Room(session.RoomID)
	if !ok {
		sio.RemoveSession(client.Id())
		client.Emit("roomDoesNotExist")
		return nil, session, false
	}
	return room, session, true
}

// emitRoomError reports a failed room operation to the client.
func emitRoomError(sio *socketio_types.SocketServer, client *socket.Socket, err error) {
	switch {
	case errors.Is(err, rooms.ErrRoomUnknown):
		sio.RemoveSession(client.Id())
		client.Emit("roomDoesNotExist")
	case errors.Is(err, rooms.ErrNotMember):
		sio.RemoveSession(client.Id())
		client.Emit("error", socketio_types.ErrorPayload(err.Error()))
	default:
		logger.Warningf("[IO] Socket %s: %v", client.Id(), err)
		client.Emit("error", socketio_types.ErrorPayload(err.Error()))
	}
}
