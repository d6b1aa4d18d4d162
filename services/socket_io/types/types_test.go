package socketio_types

import (
	"testing"

	"Mafia/services/game"
	"Mafia/services/identity"
	"Mafia/services/rooms"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/zishang520/socket.io/v2/socket"
)

func TestScopeRoom(t *testing.T) {
	assert.Equal(t, socket.Room("Ab3dE6gH"), ScopeRoom("Ab3dE6gH", game.ScopeRoom))
	assert.Equal(t, socket.Room("Ab3dE6gH_m"), ScopeRoom("Ab3dE6gH", game.ScopeMafia))
	assert.Equal(t, socket.Room("Ab3dE6gH_e"), ScopeRoom("Ab3dE6gH", game.ScopeEliminated))
}

func TestSessions(t *testing.T) {
	sio := NewSocketServer(Settings{}, identity.New())

	sio.AddSession("s1", Session{RoomID: "room1", PlayerID: "a"})
	sio.AddSession("s2", Session{RoomID: "room1", PlayerID: "b"})
	sio.AddSession("s3", Session{RoomID: "room2", PlayerID: "c"})

	session, ok := sio.GetSession("s2")
	assert.True(t, ok)
	assert.Equal(t, "b", session.PlayerID)

	assert.Equal(t, 2, sio.DropRoom("room1"))
	assert.Equal(t, 1, sio.SessionCount())

	session, ok = sio.RemoveSession("s3")
	assert.True(t, ok)
	assert.Equal(t, "room2", session.RoomID)
	_, ok = sio.RemoveSession("s3")
	assert.False(t, ok)
}

func TestRoomClosedWithoutServerDropsSessions(t *testing.T) {
	sio := NewSocketServer(Settings{}, identity.New())
	sio.AddSession("s1", Session{RoomID: "room1", PlayerID: "a"})

	sio.RoomClosed("room1")

	assert.Zero(t, sio.SessionCount())
}

func TestUpdatePayload(t *testing.T) {
	phase := game.Phase{IsDay: true, Turn: 2}

	t.Run("plain transition", func(t *testing.T) {
		assert.Equal(t, gin.H{"state": phase}, UpdatePayload(game.PhaseUpdate{Phase: phase}))
	})

	t.Run("elimination reveals the role", func(t *testing.T) {
		data := UpdatePayload(game.PhaseUpdate{
			Phase:    phase,
			Outvoted: &game.VoteResult{Index: 3, Role: game.RoleDoctor},
		})
		assert.Equal(t, gin.H{"playerIndex": 3, "role": game.RoleDoctor}, data["outvotedPlayer"])
		assert.NotContains(t, data, "winner")
	})

	t.Run("protected player stays hidden", func(t *testing.T) {
		data := UpdatePayload(game.PhaseUpdate{
			Phase:    phase,
			Outvoted: &game.VoteResult{Index: 1, Protected: true},
		})
		outvoted := data["outvotedPlayer"].(gin.H)
		assert.Nil(t, outvoted["role"])
	})

	t.Run("winner", func(t *testing.T) {
		data := UpdatePayload(game.PhaseUpdate{Phase: phase, Winner: game.FactionMafia})
		assert.Equal(t, game.FactionMafia, data["winner"])
	})
}

func TestGameStartedPayload(t *testing.T) {
	assert.Equal(t, gin.H{"role": game.RoleCivilian},
		GameStartedPayload(rooms.StartedPlayer{Index: 0, Role: game.RoleCivilian}))
	assert.Equal(t, gin.H{"role": game.RoleMafia, "mafiaMembers": []int{1, 4}},
		GameStartedPayload(rooms.StartedPlayer{Index: 1, Role: game.RoleMafia, MafiaMembers: []int{1, 4}}))
}

func TestPlayerReconnectedPayload(t *testing.T) {
	out := rooms.JoinOutcome{Kind: rooms.JoinRejoin, Index: 3, Name: "Dima"}
	assert.Equal(t, gin.H{"playerIndex": 3}, PlayerReconnectedPayload(out))
}

func TestPlayerLeftPayload(t *testing.T) {
	assert.Equal(t, gin.H{"playerIndex": 2}, PlayerLeftPayload(rooms.LeftOutcome{Index: 2}))
	assert.Equal(t, gin.H{"playerIndex": 2, "role": game.RoleMafia},
		PlayerLeftPayload(rooms.LeftOutcome{Index: 2, Role: game.RoleMafia}))
}
