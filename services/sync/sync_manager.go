// Package sync forwards room lifecycle events to the persistent backends.
//
// Rooms report events while holding their own lock, so the SyncManager only
// queues them; a single worker writes them to Redis and PostgreSQL in order.
package sync

import (
	"fmt"
	"sync"

	models "Mafia/models/postgres"
	"Mafia/services/rooms"
	"Mafia/utils/logger"
)

const DefaultQueueSize = 256

// StatsStore keeps the live counters.
type StatsStore interface {
	IncrRoomsCreated() error
	IncrGamesStarted(players int) error
	RecordGameEnded(winner string) error
}

// GameArchive stores finished games.
type GameArchive interface {
	Save(result rooms.GameResult) (*models.GameRecord, error)
}

type job struct {
	name string
	run  func() error
}

type SyncManager struct {
	stats   StatsStore
	archive GameArchive

	mu      sync.Mutex
	closed  bool
	dropped int
	jobs    chan job
	done    chan struct{}
}

// NewSyncManager creates a new instance of the synchronization manager. Either
// backend may be nil, in which case its events are skipped.
func NewSyncManager(stats StatsStore, archive GameArchive, queueSize int) *SyncManager {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	sm := &SyncManager{
		stats:   stats,
		archive: archive,
		jobs:    make(chan job, queueSize),
		done:    make(chan struct{}),
	}
	go sm.work()
	return sm
}

func (sm *SyncManager) RoomCreated(roomID string) {
	if sm.stats == nil {
		return
	}
	sm.enqueue(job{
		name: "[STATS] room " + roomID + " created",
		run:  sm.stats.IncrRoomsCreated,
	})
}

func (sm *SyncManager) GameStarted(roomID string, players int) {
	if sm.stats == nil {
		return
	}
	sm.enqueue(job{
		name: fmt.Sprintf("[STATS] game of room %s started with %d players", roomID, players),
		run: func() error {
			return sm.stats.IncrGamesStarted(players)
		},
	})
}

func (sm *SyncManager) GameEnded(result rooms.GameResult) {
	if sm.stats != nil {
		sm.enqueue(job{
			name: fmt.Sprintf("[STATS] game of room %s won by %s", result.RoomID, result.Winner),
			run: func() error {
				return sm.stats.RecordGameEnded(string(result.Winner))
			},
		})
	}
	if sm.archive != nil {
		sm.enqueue(job{
			name: "[ARCHIVE] game of room " + result.RoomID,
			run: func() error {
				record, err := sm.archive.Save(result)
				if err != nil {
					return err
				}
				logger.Debugf("[ARCHIVE] Stored game #%d of room %s", record.ID, result.RoomID)
				return nil
			},
		})
	}
}

// RoomDestroyed has nothing to persist: rooms only live in memory.
func (sm *SyncManager) RoomDestroyed(roomID string) {}

// Dropped reports how many events were lost to a full queue.
func (sm *SyncManager) Dropped() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.dropped
}

// Close stops accepting events and waits for the queued ones to be written.
func (sm *SyncManager) Close() {
	sm.mu.Lock()
	if sm.closed {
		sm.mu.Unlock()
		<-sm.done
		return
	}
	sm.closed = true
	close(sm.jobs)
	sm.mu.Unlock()
	<-sm.done
}

func (sm *SyncManager) enqueue(j job) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.closed {
		return
	}
	select {
	case sm.jobs <- j:
	default:
		sm.dropped++
		logger.Warningf("%s: queue full, dropped", j.name)
	}
}

func (sm *SyncManager) work() {
	defer close(sm.done)
	for j := range sm.jobs {
		if err := j.run(); err != nil {
			logger.Warningf("%s: %v", j.name, err)
		}
	}
}
