package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	redis_models "Mafia/models/redis"
	"Mafia/services/game"
	"Mafia/services/identity"
	"Mafia/services/records"
	"Mafia/services/rooms"
	"Mafia/services/scheduler/schedulertest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testGameOptions() game.Options {
	return game.Options{
		MaxPlayers:   10,
		MafiaCoeff:   3,
		DayTimeout:   60,
		NightTimeout: 30,
		VoteTimeout:  20,
	}
}

func newTestRegistry() *rooms.Registry {
	fake := schedulertest.NewFake(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	return rooms.NewRegistry(rooms.Config{
		WaitingTimeout: 300 * time.Second,
		ActiveTimeout:  600 * time.Second,
		DefaultName:    "Player",
	}, fake)
}

func newRoomRouter(reg *rooms.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("mafia", cookie.NewStore([]byte("test"))))

	rc := &RoomController{
		Registry:       reg,
		Identity:       identity.New(),
		Options:        testGameOptions(),
		NewRoomTimeout: 300 * time.Second,
	}
	router.GET("/find", rc.FindRoom)
	router.GET("/new", rc.NewRoom)
	router.GET("/id/:roomID", rc.GetRoom)
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", Ping)

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestNewAndFindRoom(t *testing.T) {
	reg := newTestRegistry()
	router := newRoomRouter(reg)

	req, _ := http.NewRequest("GET", "/new", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		RoomID string `json:"roomID"`
	}
	decodeBody(t, w, &created)
	assert.True(t, rooms.ValidID(created.RoomID))
	assert.Equal(t, 1, reg.Count())

	// The only pending room is the one just created
	req, _ = http.NewRequest("GET", "/find", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var found struct {
		RoomID string `json:"roomID"`
	}
	decodeBody(t, w, &found)
	assert.Equal(t, created.RoomID, found.RoomID)
	assert.Equal(t, 1, reg.Count())
}

func TestGetRoom(t *testing.T) {
	reg := newTestRegistry()
	router := newRoomRouter(reg)
	id, err := reg.CreateRoom(testGameOptions(), time.Minute)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/id/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		RoomID   string       `json:"roomID"`
		PlayerID string       `json:"playerID"`
		Players  int          `json:"players"`
		Sealed   bool         `json:"sealed"`
		Running  bool         `json:"running"`
		Options  game.Options `json:"options"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, id, body.RoomID)
	assert.True(t, identity.Valid(body.PlayerID))
	assert.Equal(t, 0, body.Players)
	assert.False(t, body.Sealed)
	assert.Equal(t, 10, body.Options.MaxPlayers)

	var playerCookie *http.Cookie
	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		switch c.Name {
		case PlayerIDKey:
			playerCookie = c
		case "mafia":
			sessionCookie = c
		}
	}
	require.NotNil(t, playerCookie)
	require.NotNil(t, sessionCookie)
	assert.Equal(t, body.PlayerID, playerCookie.Value)

	// A returning visitor keeps their id
	req, _ = http.NewRequest("GET", "/id/"+id, nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var again struct {
		PlayerID string `json:"playerID"`
	}
	decodeBody(t, w, &again)
	assert.Equal(t, body.PlayerID, again.PlayerID)
}

func TestGetRoomNotFound(t *testing.T) {
	router := newRoomRouter(newTestRegistry())

	for _, path := range []string{"/id/Ab3dE6gH", "/id/short", "/id/not-a-room"} {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"Room not found"}`, w.Body.String())
	}
}

type mockStats struct {
	mock.Mock
}

func (m *mockStats) GetStats() (*redis_models.Stats, error) {
	args := m.Called()
	stats, _ := args.Get(0).(*redis_models.Stats)
	return stats, args.Error(1)
}

func TestGetStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := newTestRegistry()
	_, err := reg.CreateRoom(testGameOptions(), time.Minute)
	require.NoError(t, err)

	stats := new(mockStats)
	stats.On("GetStats").Return(&redis_models.Stats{
		RoomsCreated: 12,
		GamesStarted: 5,
		Wins:         map[string]int64{"mafia": 2, "civilian": 3},
	}, nil).Once()

	sc := &StatsController{Registry: reg, Stats: stats}
	router := gin.New()
	router.GET("/stats", sc.GetStats)

	req, _ := http.NewRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body redis_models.Stats
	decodeBody(t, w, &body)
	assert.Equal(t, int64(12), body.RoomsCreated)
	assert.Equal(t, int64(3), body.Wins["civilian"])
	assert.Equal(t, 1, body.LiveRooms)
	assert.Equal(t, 1, body.PendingRooms)
	stats.AssertExpectations(t)
}

func TestGetStatsWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sc := &StatsController{Registry: newTestRegistry()}
	router := gin.New()
	router.GET("/stats", sc.GetStats)

	req, _ := http.NewRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body redis_models.Stats
	decodeBody(t, w, &body)
	assert.Zero(t, body.RoomsCreated)
	assert.Zero(t, body.LiveRooms)
}

func TestGetStatsError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stats := new(mockStats)
	stats.On("GetStats").Return(nil, assert.AnError).Once()

	sc := &StatsController{Registry: newTestRegistry(), Stats: stats}
	router := gin.New()
	router.GET("/stats", sc.GetStats)

	req, _ := http.NewRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func newGamesRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	gc := &GamesController{Archive: records.NewArchive(gormDB)}
	router := gin.New()
	router.GET("/games", gc.ListGames)
	router.GET("/games/:roomID", gc.RoomGames)
	return router, mock
}

func TestListGames(t *testing.T) {
	router, mock := newGamesRouter(t)
	ended := time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "game_records" ORDER BY ended_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "winner", "turns", "players", "names", "roles", "winners", "ended_at"}).
			AddRow(4, "Ab3dE6gH", "civilian", 3, 4, `["a","b","c","d"]`, `["mafia","civilian","civilian","doctor"]`, "{1,2,3}", ended))

	req, _ := http.NewRequest("GET", "/games?limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	decodeBody(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Ab3dE6gH", body[0]["room_id"])
	assert.Equal(t, "civilian", body[0]["winner"])
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, body[0]["winners"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGamesBadLimit(t *testing.T) {
	router, _ := newGamesRouter(t)

	req, _ := http.NewRequest("GET", "/games?limit=lots", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoomGames(t *testing.T) {
	router, mock := newGamesRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "game_records" WHERE room_id = \$1`).
		WithArgs("Ab3dE6gH").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "winner"}))

	req, _ := http.NewRequest("GET", "/games/Ab3dE6gH", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())

	req, _ = http.NewRequest("GET", "/games/bad", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGamesWithoutArchive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gc := &GamesController{Archive: records.NewArchive(nil)}
	router := gin.New()
	router.GET("/games", gc.ListGames)

	req, _ := http.NewRequest("GET", "/games", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
