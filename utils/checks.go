package utils

import (
	"Mafia/services/rooms"
	"Mafia/utils/logger"

	"github.com/zishang520/socket.io/v2/socket"
)

// RoomExists looks up roomID and tells the client when there is no such room.
func RoomExists(registry *rooms.Registry, roomID string, client *socket.Socket) (*rooms.Room, bool) {
	if !rooms.ValidID(roomID) {
		logger.Debugf("[JOIN] Malformed room id %q from socket %s", roomID, client.Id())
		client.Emit("roomDoesNotExist")
		return nil, false
	}
	room, ok := registry.Room(roomID)
	if !ok {
		logger.Debugf("[JOIN] Room %s does not exist", roomID)
		client.Emit("roomDoesNotExist")
		return nil, false
	}
	return room, true
}
