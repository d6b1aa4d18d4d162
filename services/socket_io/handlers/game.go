package handlers

import (
	"Mafia/services/game"
	socketio_types "Mafia/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleStartGame starts the game when the owner asks for it. Every player
// gets their role privately, then the room gets the opening state.
func HandleStartGame(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, session, ok := sessionRoom(sio, client)
		if !ok {
			return
		}

		out, err := room.StartGame(session.PlayerID)
		if err != nil {
			emitRoomError(sio, client, err)
			return
		}

		for _, sp := range out.Players {
			if sp.Conn != nil {
				sp.Conn.Emit("gameStarted", socketio_types.GameStartedPayload(sp))
			}
		}
		sio.Sio_server.To(socket.Room(room.ID())).Emit("update", gin.H{"state": out.Phase})
	}
}

// HandlePlayerVote records a vote and shows it to the audience of the
// current vote: the whole room by day, the mafia by night.
func HandlePlayerVote(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, session, ok := sessionRoom(sio, client)
		if !ok {
			return
		}

		var data socketio_types.VoteData
		if err := decodeArgs(args, &data); err != nil || data.Vote == nil {
			client.Emit("voteRejected", socketio_types.RejectedPayload(game.ReasonUnknownTarget))
			return
		}

		out, err := room.Vote(session.PlayerID, session.Conn, *data.Vote)
		if err != nil {
			emitRoomError(sio, client, err)
			return
		}
		if !out.Accepted {
			client.Emit("voteRejected", socketio_types.RejectedPayload(out.Reason))
			return
		}

		client.To(socketio_types.ScopeRoom(room.ID(), out.Scope)).Emit("playerVote", socketio_types.PlayerVotePayload(out))
		client.Emit("voteConfirmed")
	}
}

// HandlePlayerChoice applies a night action. Investigation results go to the
// detective only.
func HandlePlayerChoice(sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, session, ok := sessionRoom(sio, client)
		if !ok {
			return
		}

		var data socketio_types.ChoiceData
		if err := decodeArgs(args, &data); err != nil || data.Choice == nil {
			client.Emit("choiceRejected", socketio_types.RejectedPayload(game.ReasonUnknownTarget))
			return
		}

		out, err := room.Choice(session.PlayerID, session.Conn, *data.Choice)
		if err != nil {
			emitRoomError(sio, client, err)
			return
		}
		if !out.Accepted {
			client.Emit("choiceRejected", socketio_types.RejectedPayload(out.Reason))
			return
		}

		if out.Reveal != nil {
			client.Emit("detectiveResponse", socketio_types.DetectivePayload(out.Reveal))
		}
		client.Emit("choiceConfirmed")
	}
}
