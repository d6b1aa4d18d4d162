package redis

import (
	"errors"
	"testing"

	redis_utils "Mafia/services/redis/utils"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockClient() (*RedisClient, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return NewRedisClientFrom(db), mock
}

func TestIncrRoomsCreated(t *testing.T) {
	rc, mock := newMockClient()
	mock.ExpectHIncrBy("mafia:stats", "rooms_created", 1).SetVal(7)

	require.NoError(t, rc.IncrRoomsCreated())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrRoomsCreatedError(t *testing.T) {
	rc, mock := newMockClient()
	mock.ExpectHIncrBy("mafia:stats", "rooms_created", 1).SetErr(errors.New("connection refused"))

	err := rc.IncrRoomsCreated()

	assert.ErrorContains(t, err, "connection refused")
}

func TestIncrGamesStarted(t *testing.T) {
	rc, mock := newMockClient()
	mock.ExpectHIncrBy("mafia:stats", "games_started", 1).SetVal(1)
	mock.ExpectHIncrBy("mafia:stats", "players_dealt", 6).SetVal(6)

	require.NoError(t, rc.IncrGamesStarted(6))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordGameEnded(t *testing.T) {
	rc, mock := newMockClient()
	mock.ExpectHIncrBy("mafia:stats", "games_finished", 1).SetVal(3)
	mock.ExpectHIncrBy("mafia:stats", "wins:mafia", 1).SetVal(2)

	require.NoError(t, rc.RecordGameEnded("mafia"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats(t *testing.T) {
	rc, mock := newMockClient()
	mock.ExpectHGetAll("mafia:stats").SetVal(map[string]string{
		"rooms_created":  "12",
		"games_started":  "5",
		"games_finished": "4",
		"players_dealt":  "31",
		"wins:civilian":  "1",
		"wins:mafia":     "3",
	})

	stats, err := rc.GetStats()

	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.RoomsCreated)
	assert.Equal(t, int64(5), stats.GamesStarted)
	assert.Equal(t, int64(4), stats.GamesFinished)
	assert.Equal(t, int64(31), stats.PlayersDealt)
	assert.Equal(t, map[string]int64{"civilian": 1, "mafia": 3}, stats.Wins)
}

func TestGetStatsEmpty(t *testing.T) {
	rc, mock := newMockClient()
	mock.ExpectHGetAll("mafia:stats").SetVal(map[string]string{})

	stats, err := rc.GetStats()

	require.NoError(t, err)
	assert.Zero(t, stats.RoomsCreated)
	assert.Empty(t, stats.Wins)
}

func TestGetStatsRejectsGarbage(t *testing.T) {
	rc, mock := newMockClient()
	mock.ExpectHGetAll("mafia:stats").SetVal(map[string]string{"rooms_created": "many"})

	_, err := rc.GetStats()

	assert.ErrorContains(t, err, "rooms_created")
}

func TestParseWinsField(t *testing.T) {
	faction, ok := redis_utils.ParseWinsField(redis_utils.FormatWinsField("civilian"))
	assert.True(t, ok)
	assert.Equal(t, "civilian", faction)

	_, ok = redis_utils.ParseWinsField("wins:")
	assert.False(t, ok)
	_, ok = redis_utils.ParseWinsField("rooms_created")
	assert.False(t, ok)
}
