package controllers

import (
	"net/http"

	redis_models "Mafia/models/redis"
	"Mafia/services/rooms"

	"github.com/gin-gonic/gin"
)

// StatsReader reads the persistent counters.
type StatsReader interface {
	GetStats() (*redis_models.Stats, error)
}

type StatsController struct {
	Registry *rooms.Registry
	// Nil when Redis is not configured, only live counts are served then
	Stats StatsReader
}

// GetStats returns the server statistics
// @Summary Server statistics
// @Description Rooms created, games played and won by each side, and the rooms currently alive
// @Tags stats
// @Produce json
// @Success 200 {object} redis.Stats
// @Failure 500 {object} object{error=string}
// @Router /stats [get]
func (sc *StatsController) GetStats(c *gin.Context) {
	stats := &redis_models.Stats{Wins: map[string]int64{}}
	if sc.Stats != nil {
		var err error
		stats, err = sc.Stats.GetStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading stats: " + err.Error()})
			return
		}
	}
	stats.LiveRooms = sc.Registry.Count()
	stats.PendingRooms = sc.Registry.PendingCount()
	c.JSON(http.StatusOK, stats)
}
