package controllers

import (
	"net/http"
	"time"

	"Mafia/services/game"
	"Mafia/services/identity"
	"Mafia/services/rooms"
	"Mafia/utils/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// PlayerIDKey names both the session value and the plain cookie the client
// page reads its player id from.
const PlayerIDKey = "playerID"

type RoomController struct {
	Registry       *rooms.Registry
	Identity       identity.Allocator
	Options        game.Options
	NewRoomTimeout time.Duration
}

// FindRoom returns a room waiting for players, creating one when none is
// @Summary Find a room to play in
// @Description Returns the id of a random room that has not started yet, or of a new room
// @Tags rooms
// @Produce json
// @Success 200 {object} object{roomID=string}
// @Failure 500 {object} object{error=string}
// @Router /find [get]
func (rc *RoomController) FindRoom(c *gin.Context) {
	id, err := rc.Registry.FindOrCreateRoom(rc.Options, rc.NewRoomTimeout)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error finding a room: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomID": id})
}

// NewRoom always creates a room
// @Summary Create a room
// @Description Creates a room with the server's default options and returns its id
// @Tags rooms
// @Produce json
// @Success 200 {object} object{roomID=string}
// @Failure 500 {object} object{error=string}
// @Router /new [get]
func (rc *RoomController) NewRoom(c *gin.Context) {
	id, err := rc.Registry.CreateRoom(rc.Options, rc.NewRoomTimeout)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating a room: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomID": id})
}

// GetRoom describes a room and makes sure the caller has a player id
// @Summary Get a room
// @Description Returns the public state of a room. Assigns a playerID cookie to new visitors.
// @Tags rooms
// @Produce json
// @Param roomID path string true "Room id"
// @Success 200 {object} object{roomID=string,playerID=string,players=int,sealed=bool,running=bool,options=object}
// @Failure 404 {object} object{error=string}
// @Router /id/{roomID} [get]
func (rc *RoomController) GetRoom(c *gin.Context) {
	roomID := c.Param("roomID")

	var room *rooms.Room
	if rooms.ValidID(roomID) {
		room, _ = rc.Registry.Room(roomID)
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	session := sessions.Default(c)
	playerID, _ := session.Get(PlayerIDKey).(string)
	if !identity.Valid(playerID) {
		playerID = rc.Identity.NewPlayerID()
		session.Set(PlayerIDKey, playerID)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving session: " + err.Error()})
			return
		}
		logger.Debugf("[HTTP] New player %s for room %s", playerID, roomID)
	}
	c.SetCookie(PlayerIDKey, playerID, 0, "/", "", false, false)

	c.JSON(http.StatusOK, gin.H{
		"roomID":   room.ID(),
		"playerID": playerID,
		"players":  room.PlayerCount(),
		"sealed":   room.Sealed(),
		"running":  room.Running(),
		"options":  room.Options(),
	})
}
