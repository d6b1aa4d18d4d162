package records

import (
	"encoding/json"
	"testing"
	"time"

	"Mafia/services/game"
	"Mafia/services/rooms"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockArchive(t *testing.T) (*Archive, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return NewArchive(db), mock
}

func sampleResult() rooms.GameResult {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return rooms.GameResult{
		RoomID: "Ab3dE6gH",
		Winner: game.FactionCivilian,
		Turns:  3,
		Names:  []string{"Ana", "Bruno", "Carla", "Dani"},
		Roles: []game.Role{
			game.RoleMafia, game.RoleDetective, game.RoleCivilian, game.RoleNone,
		},
		Winners:   []int{1, 2},
		StartedAt: start,
		EndedAt:   start.Add(5 * time.Minute),
	}
}

func TestNewGameRecord(t *testing.T) {
	record, err := NewGameRecord(sampleResult())
	require.NoError(t, err)

	assert.Equal(t, "Ab3dE6gH", record.RoomID)
	assert.Equal(t, "civilian", record.Winner)
	assert.Equal(t, 3, record.Turns)
	// The absent player is not counted
	assert.Equal(t, 3, record.Players)
	assert.Equal(t, []int64{1, 2}, []int64(record.Winners))

	var names []string
	require.NoError(t, json.Unmarshal(record.Names, &names))
	assert.Equal(t, []string{"Ana", "Bruno", "Carla", "Dani"}, names)

	var roles []string
	require.NoError(t, json.Unmarshal(record.Roles, &roles))
	assert.Equal(t, []string{"mafia", "detective", "civilian", ""}, roles)
}

func TestSave(t *testing.T) {
	archive, mock := newMockArchive(t)

	mock.ExpectQuery(`INSERT INTO "game_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	record, err := archive.Save(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, uint(7), record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveError(t *testing.T) {
	archive, mock := newMockArchive(t)

	mock.ExpectQuery(`INSERT INTO "game_records"`).
		WillReturnError(assert.AnError)

	_, err := archive.Save(sampleResult())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Ab3dE6gH")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecent(t *testing.T) {
	archive, mock := newMockArchive(t)
	ended := time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "room_id", "winner", "turns", "players", "names", "roles", "winners", "started_at", "ended_at", "created_at"}).
		AddRow(2, "Ab3dE6gH", "mafia", 2, 3, `["a","b","c"]`, `["mafia","civilian","civilian"]`, "{0}", ended.Add(-time.Minute), ended, ended).
		AddRow(1, "zz99yy88", "civilian", 4, 3, `["d","e","f"]`, `["civilian","doctor","mafia"]`, "{0,1}", ended.Add(-time.Hour), ended.Add(-time.Minute), ended)

	mock.ExpectQuery(`SELECT \* FROM "game_records" ORDER BY ended_at DESC LIMIT`).
		WillReturnRows(rows)

	records, err := archive.Recent(0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ab3dE6gH", records[0].RoomID)
	assert.Equal(t, []int64{0, 1}, []int64(records[1].Winners))
	assert.JSONEq(t, `["d","e","f"]`, string(records[1].Names))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByRoom(t *testing.T) {
	archive, mock := newMockArchive(t)

	mock.ExpectQuery(`SELECT \* FROM "game_records" WHERE room_id = \$1 ORDER BY ended_at DESC`).
		WithArgs("Ab3dE6gH").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "winner"}).
			AddRow(3, "Ab3dE6gH", "mafia"))

	records, err := archive.ByRoom("Ab3dE6gH")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "mafia", records[0].Winner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisabledArchive(t *testing.T) {
	var archive *Archive

	_, err := archive.Save(sampleResult())
	assert.ErrorIs(t, err, ErrNoArchive)
	_, err = archive.Recent(10)
	assert.ErrorIs(t, err, ErrNoArchive)
	_, err = NewArchive(nil).ByRoom("x")
	assert.ErrorIs(t, err, ErrNoArchive)
}
