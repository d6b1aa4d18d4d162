package sync

import (
	"testing"
	"time"

	models "Mafia/models/postgres"
	"Mafia/services/game"
	"Mafia/services/rooms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStats struct {
	mock.Mock
}

func (m *mockStats) IncrRoomsCreated() error {
	return m.Called().Error(0)
}

func (m *mockStats) IncrGamesStarted(players int) error {
	return m.Called(players).Error(0)
}

func (m *mockStats) RecordGameEnded(winner string) error {
	return m.Called(winner).Error(0)
}

type mockArchive struct {
	mock.Mock
}

func (m *mockArchive) Save(result rooms.GameResult) (*models.GameRecord, error) {
	args := m.Called(result)
	record, _ := args.Get(0).(*models.GameRecord)
	return record, args.Error(1)
}

func finishedGame() rooms.GameResult {
	return rooms.GameResult{
		RoomID:  "Ab3dE6gH",
		Winner:  game.FactionMafia,
		Turns:   2,
		Names:   []string{"a", "b", "c"},
		Roles:   []game.Role{game.RoleMafia, game.RoleCivilian, game.RoleCivilian},
		Winners: []int{0},
		EndedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSyncManagerForwardsEvents(t *testing.T) {
	stats := new(mockStats)
	archive := new(mockArchive)
	result := finishedGame()

	stats.On("IncrRoomsCreated").Return(nil).Once()
	stats.On("IncrGamesStarted", 3).Return(nil).Once()
	stats.On("RecordGameEnded", "mafia").Return(nil).Once()
	archive.On("Save", result).Return(&models.GameRecord{ID: 1}, nil).Once()

	sm := NewSyncManager(stats, archive, 8)
	sm.RoomCreated("Ab3dE6gH")
	sm.GameStarted("Ab3dE6gH", 3)
	sm.GameEnded(result)
	sm.RoomDestroyed("Ab3dE6gH")
	sm.Close()

	stats.AssertExpectations(t)
	archive.AssertExpectations(t)
	assert.Equal(t, 0, sm.Dropped())
}

func TestSyncManagerKeepsGoingAfterErrors(t *testing.T) {
	stats := new(mockStats)
	archive := new(mockArchive)
	result := finishedGame()

	stats.On("RecordGameEnded", "mafia").Return(assert.AnError).Once()
	archive.On("Save", result).Return(nil, assert.AnError).Once()
	stats.On("IncrRoomsCreated").Return(nil).Once()

	sm := NewSyncManager(stats, archive, 8)
	sm.GameEnded(result)
	sm.RoomCreated("zz99yy88")
	sm.Close()

	stats.AssertExpectations(t)
	archive.AssertExpectations(t)
}

func TestSyncManagerWithoutBackends(t *testing.T) {
	sm := NewSyncManager(nil, nil, 1)
	sm.RoomCreated("a")
	sm.GameStarted("a", 4)
	sm.GameEnded(finishedGame())
	sm.Close()

	assert.Equal(t, 0, sm.Dropped())
}

func TestSyncManagerDropsWhenFull(t *testing.T) {
	stats := new(mockStats)
	started := make(chan struct{})
	release := make(chan struct{})

	stats.On("IncrRoomsCreated").Return(nil).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Once()
	stats.On("IncrRoomsCreated").Return(nil).Once()

	sm := NewSyncManager(stats, nil, 1)
	sm.RoomCreated("a")
	<-started

	// The worker is busy: one event fits in the queue, the next is dropped
	sm.RoomCreated("b")
	sm.RoomCreated("c")
	assert.Equal(t, 1, sm.Dropped())

	close(release)
	sm.Close()
	stats.AssertExpectations(t)
}

func TestSyncManagerIgnoresEventsAfterClose(t *testing.T) {
	stats := new(mockStats)

	sm := NewSyncManager(stats, nil, 1)
	sm.Close()
	sm.RoomCreated("a")
	sm.Close()

	stats.AssertNotCalled(t, "IncrRoomsCreated")
}
