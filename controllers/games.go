package controllers

import (
	"errors"
	"net/http"
	"strconv"

	models "Mafia/models/postgres"
	"Mafia/services/records"
	"Mafia/services/rooms"

	"github.com/gin-gonic/gin"
)

// GameHistory reads archived games.
type GameHistory interface {
	Recent(limit int) ([]models.GameRecord, error)
	ByRoom(roomID string) ([]models.GameRecord, error)
}

type GamesController struct {
	Archive GameHistory
}

// ListGames returns the latest finished games
// @Summary Recent games
// @Description Latest finished games, newest first
// @Tags games
// @Produce json
// @Param limit query int false "How many games (default 20, max 100)"
// @Success 200 {array} postgres.GameRecord
// @Failure 400 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /games [get]
func (gc *GamesController) ListGames(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
			return
		}
		limit = n
	}

	games, err := gc.Archive.Recent(limit)
	if err != nil {
		gc.fail(c, err)
		return
	}
	if games == nil {
		games = []models.GameRecord{}
	}
	c.JSON(http.StatusOK, games)
}

// RoomGames returns every finished game of a room
// @Summary Games of a room
// @Description Finished games played in one room, newest first
// @Tags games
// @Produce json
// @Param roomID path string true "Room id"
// @Success 200 {array} postgres.GameRecord
// @Failure 400 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /games/{roomID} [get]
func (gc *GamesController) RoomGames(c *gin.Context) {
	roomID := c.Param("roomID")
	if !rooms.ValidID(roomID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room id"})
		return
	}

	games, err := gc.Archive.ByRoom(roomID)
	if err != nil {
		gc.fail(c, err)
		return
	}
	if games == nil {
		games = []models.GameRecord{}
	}
	c.JSON(http.StatusOK, games)
}

func (gc *GamesController) fail(c *gin.Context, err error) {
	if errors.Is(err, records.ErrNoArchive) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
}
