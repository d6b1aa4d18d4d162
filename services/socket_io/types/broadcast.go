package socketio_types

import (
	"Mafia/services/game"
	"Mafia/utils/logger"

	"github.com/zishang520/socket.io/v2/socket"
)

// PhaseChanged pushes a timer-driven phase change to the whole room.
func (s *SocketServer) PhaseChanged(roomID string, update game.PhaseUpdate) {
	if s.Sio_server == nil {
		return
	}
	s.Sio_server.To(socket.Room(roomID)).Emit("update", UpdatePayload(update))
}

// RoomClosed forgets the sessions of an expired room. Their sockets get
// "roomDoesNotExist" on their next action.
func (s *SocketServer) RoomClosed(roomID string) {
	dropped := s.DropRoom(roomID)
	logger.Debugf("[RM] Dropped %d sessions of closed room %s", dropped, roomID)
	if s.Sio_server != nil {
		s.Sio_server.To(socket.Room(roomID)).Emit("roomClosed")
	}
}
