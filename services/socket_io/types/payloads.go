package socketio_types

import (
	"Mafia/services/game"
	"Mafia/services/rooms"

	"github.com/gin-gonic/gin"
)

// Inbound payloads.

type AckRoomData struct {
	RoomID     string `json:"roomID"`
	PlayerID   string `json:"playerID"`
	PlayerName string `json:"playerName"`
}

type VoteData struct {
	Vote *int `json:"vote"`
}

type ChoiceData struct {
	Choice *int `json:"choice"`
}

// ChatData carries an optional client-side id echoed back in the
// confirmation.
type ChatData struct {
	Message string      `json:"message"`
	ID      interface{} `json:"id"`
}

// Outbound payloads.

func UpdatePayload(update game.PhaseUpdate) gin.H {
	data := gin.H{"state": update.Phase}
	if v := update.Outvoted; v != nil {
		var role interface{}
		if !v.Protected {
			role = v.Role
		}
		data["outvotedPlayer"] = gin.H{"playerIndex": v.Index, "role": role}
	}
	if update.Winner != game.FactionNone {
		data["winner"] = update.Winner
	}
	return data
}

func GameStartedPayload(sp rooms.StartedPlayer) gin.H {
	data := gin.H{"role": sp.Role}
	if len(sp.MafiaMembers) > 0 {
		data["mafiaMembers"] = sp.MafiaMembers
	}
	return data
}

func PlayerJoinedPayload(out rooms.JoinOutcome) gin.H {
	return gin.H{"playerIndex": out.Index, "playerName": out.Name}
}

func PlayerReconnectedPayload(out rooms.JoinOutcome) gin.H {
	return gin.H{"playerIndex": out.Index}
}

func PlayerLeftPayload(out rooms.LeftOutcome) gin.H {
	data := gin.H{"playerIndex": out.Index}
	if out.Role != game.RoleNone {
		data["role"] = out.Role
	}
	return data
}

func PlayerVotePayload(out rooms.VoteOutcome) gin.H {
	return gin.H{"playerIndex": out.Voter, "vote": out.Target}
}

func DetectivePayload(reveal *game.Exposure) gin.H {
	return gin.H{"playerIndex": reveal.Index, "role": reveal.Role}
}

func ChatPayload(out rooms.ChatOutcome) gin.H {
	return gin.H{"playerIndex": out.Index, "message": out.Message}
}

func RejectedPayload(reason game.Reason) gin.H {
	return gin.H{"reason": string(reason)}
}

func ErrorPayload(msg string) gin.H {
	return gin.H{"error": msg}
}
