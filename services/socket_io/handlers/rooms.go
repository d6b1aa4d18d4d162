package handlers

import (
	"errors"

	"Mafia/services/rooms"
	socketio_types "Mafia/services/socket_io/types"
	"Mafia/utils"
	"Mafia/utils/logger"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleFindRoom answers with a room waiting for players, creating one when
// none is.
func HandleFindRoom(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		id, err := sio.Registry.FindOrCreateRoom(sio.Settings.DefaultOptions, sio.Settings.NewRoomTimeout)
		if err != nil {
			logger.Criticalf("[RM] findRoom failed: %v", err)
			client.Emit("error", socketio_types.ErrorPayload("could not find a room"))
			return
		}
		client.Emit("roomIDReturned", id)
	}
}

// HandleNewRoom always creates a room.
func HandleNewRoom(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		id, err := sio.Registry.CreateRoom(sio.Settings.DefaultOptions, sio.Settings.NewRoomTimeout)
		if err != nil {
			logger.Criticalf("[RM] newRoom failed: %v", err)
			client.Emit("error", socketio_types.ErrorPayload("could not create a room"))
			return
		}
		client.Emit("roomIDReturned", id)
	}
}

// HandleAckRoom binds the socket to a room as the given player and sends
// back the room snapshot.
func HandleAckRoom(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		var data socketio_types.AckRoomData
		if err := decodeArgs(args, &data); err != nil || data.RoomID == "" || data.PlayerID == "" {
			logger.Debugf("[JOIN] Socket %s sent a bad ackRoom: %v", client.Id(), args)
			client.Emit("error", socketio_types.ErrorPayload("roomID and playerID are required"))
			return
		}

		room, ok := utils.RoomExists(sio.Registry, data.RoomID, client)
		if !ok {
			return
		}

		// A socket acknowledging a different room or player leaves the old one.
		if prev, ok := sio.GetSession(client.Id()); ok && (prev.RoomID != data.RoomID || prev.PlayerID != data.PlayerID) {
			sio.RemoveSession(client.Id())
			leaveRoom(sio, prev)
		}

		conn := &socketio_types.SocketConn{Client: client, RoomID: room.ID()}
		out, err := room.Connect(data.PlayerID, data.PlayerName, conn)
		if err != nil {
			if errors.Is(err, rooms.ErrRoomUnknown) {
				client.Emit("roomDoesNotExist")
				return
			}
			client.Emit("error", socketio_types.ErrorPayload(err.Error()))
			return
		}

		switch out.Kind {
		case rooms.JoinSealed:
			client.Emit("roomIsSealed")
			return
		case rooms.JoinFirst:
			client.To(socket.Room(room.ID())).Emit("playerJoined", socketio_types.PlayerJoinedPayload(out))
		case rooms.JoinRejoin:
			client.To(socket.Room(room.ID())).Emit("playerReconnected", socketio_types.PlayerReconnectedPayload(out))
		}

		sio.AddSession(client.Id(), socketio_types.Session{
			RoomID:   room.ID(),
			PlayerID: data.PlayerID,
			Conn:     conn,
		})
		client.Emit("roomData", out.Snapshot)
	}
}
