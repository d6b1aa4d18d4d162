package handlers

import (
	socketio_types "Mafia/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleChatMessage relays a chat line to whoever the speaker may reach
// right now. When the client tagged the message with an id, the outcome is
// acknowledged with that id.
func HandleChatMessage(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, session, ok := sessionRoom(sio, client)
		if !ok {
			return
		}

		var data socketio_types.ChatData
		if err := decodeArgs(args, &data); err != nil {
			return
		}

		out, err := room.Chat(session.PlayerID, session.Conn, data.Message)
		if err != nil {
			emitRoomError(sio, client, err)
			return
		}
		if !out.Accepted {
			if data.ID != nil {
				client.Emit("chatMessageRejected", data.ID)
			}
			return
		}

		client.To(socketio_types.ScopeRoom(room.ID(), out.Scope)).Emit("chatMessage", socketio_types.ChatPayload(out))
		if data.ID != nil {
			client.Emit("chatMessageConfirmed", data.ID)
		}
	}
}
