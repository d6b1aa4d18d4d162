package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Mafia/controllers"
	"Mafia/middleware"
	"Mafia/routes"
	"Mafia/services/game"
	"Mafia/services/identity"
	"Mafia/services/records"
	"Mafia/services/rooms"
	"Mafia/services/scheduler/schedulertest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := rooms.NewRegistry(rooms.Config{
		WaitingTimeout: time.Minute,
		ActiveTimeout:  time.Minute,
	}, schedulertest.NewFake(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))

	router := gin.New()
	middleware.SetUpMiddleware(router, "test-key")
	routes.SetupRoutes(router,
		&controllers.RoomController{
			Registry: reg,
			Identity: identity.New(),
			Options: game.Options{
				MaxPlayers: 10, MafiaCoeff: 3, DayTimeout: 60, NightTimeout: 30, VoteTimeout: 20,
			},
			NewRoomTimeout: time.Minute,
		},
		&controllers.StatsController{Registry: reg},
		&controllers.GamesController{Archive: records.NewArchive(nil)},
	)
	return router
}

func TestRoutes(t *testing.T) {
	router := newRouter()

	tests := []struct {
		path   string
		status int
	}{
		{"/ping", http.StatusOK},
		{"/new", http.StatusOK},
		{"/find", http.StatusOK},
		{"/stats", http.StatusOK},
		{"/id/Ab3dE6gH", http.StatusNotFound},
		{"/games", http.StatusServiceUnavailable},
		{"/games/Ab3dE6gH", http.StatusServiceUnavailable},
		{"/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req, _ := http.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter()

	req, _ := http.NewRequest("OPTIONS", "/find", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
