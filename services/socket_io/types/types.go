package socketio_types

import (
	"sync"
	"time"

	"Mafia/services/game"
	"Mafia/services/identity"
	"Mafia/services/rooms"

	"github.com/zishang520/socket.io/v2/socket"
)

// Settings are the adapter-level knobs that rooms do not know about.
type Settings struct {
	DefaultOptions game.Options
	NewRoomTimeout time.Duration
	Debug          bool
}

// Session binds a socket to the room and player it acknowledged.
type Session struct {
	RoomID   string
	PlayerID string
	Conn     *SocketConn
}

// SocketServer is a struct that contains the socket.io server, the room
// registry and the table of acknowledged sessions.
type SocketServer struct {
	Sio_server *socket.Server
	Registry   *rooms.Registry
	Identity   identity.Allocator
	Settings   Settings

	// socket id -> session, filled by ackRoom
	sessions map[socket.SocketId]Session
	mutex    sync.RWMutex
}

func NewSocketServer(settings Settings, ids identity.Allocator) *SocketServer {
	return &SocketServer{
		Identity: ids,
		Settings: settings,
		sessions: make(map[socket.SocketId]Session),
	}
}

func (s *SocketServer) AddSession(id socket.SocketId, session Session) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sessions[id] = session
}

func (s *SocketServer) RemoveSession(id socket.SocketId) (Session, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	session, exists := s.sessions[id]
	delete(s.sessions, id)
	return session, exists
}

func (s *SocketServer) GetSession(id socket.SocketId) (Session, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	session, exists := s.sessions[id]
	return session, exists
}

// DropRoom forgets every session bound to roomID and returns how many there
// were.
func (s *SocketServer) DropRoom(roomID string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	dropped := 0
	for id, session := range s.sessions {
		if session.RoomID == roomID {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

func (s *SocketServer) SessionCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}
