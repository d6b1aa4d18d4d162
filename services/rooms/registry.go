package rooms

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"Mafia/services/game"
	"Mafia/services/scheduler"
	"Mafia/utils/logger"

	"golang.org/x/time/rate"
)

const (
	idLength   = 8
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// maxIDAttempts bounds the collision retries of CreateRoom.
	maxIDAttempts = 32
)

// Config holds the registry-wide room settings.
type Config struct {
	// WaitingTimeout is the inactivity timeout of a room with no game.
	WaitingTimeout time.Duration
	// ActiveTimeout is the inactivity timeout once a game has started.
	ActiveTimeout time.Duration
	DefaultName   string
	ChatRate      rate.Limit
	ChatBurst     int
	MaxMessageLen int
}

type Option func(*Registry)

func WithBroadcaster(b Broadcaster) Option {
	return func(r *Registry) {
		if b != nil {
			r.broadcaster = b
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithRand fixes the random source used for room ids, room matching and
// seeding every game.
func WithRand(rng *rand.Rand) Option {
	return func(r *Registry) {
		r.rng = rng
	}
}

// Registry owns every live room. Rooms call back into it while holding
// their own lock, so the registry never calls into a room while holding mu.
type Registry struct {
	cfg         Config
	sched       scheduler.Scheduler
	broadcaster Broadcaster
	observer    Observer

	mu      sync.Mutex
	rng     *rand.Rand
	rooms   map[string]*Room
	pending []string
}

func NewRegistry(cfg Config, sched scheduler.Scheduler, opts ...Option) *Registry {
	if cfg.ChatRate <= 0 {
		cfg.ChatRate = rate.Inf
	}
	if cfg.ChatBurst < 1 {
		cfg.ChatBurst = 1
	}
	r := &Registry{
		cfg:         cfg,
		sched:       sched,
		broadcaster: nopBroadcaster{},
		observer:    NopObserver{},
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		rooms:       make(map[string]*Room),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Config() Config {
	return r.cfg
}

// CreateRoom registers a new pending room and arms its inactivity timer.
func (r *Registry) CreateRoom(opts game.Options, initialTimeout time.Duration) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	id, err := r.newIDLocked()
	if err != nil {
		live := len(r.rooms)
		r.mu.Unlock()
		logger.Criticalf("[RM] %v (%d rooms)", err, live)
		return "", err
	}
	room := newRoom(id, opts, r)
	r.rooms[id] = room
	r.pending = append(r.pending, id)
	r.mu.Unlock()

	room.RefreshInactivityTimer(initialTimeout)
	logger.Infof("[RM] Created room /id/%s/", id)
	r.observer.RoomCreated(id)
	return id, nil
}

// FindOrCreateRoom returns a random pending room, or a new one when none is
// waiting for players.
func (r *Registry) FindOrCreateRoom(opts game.Options, initialTimeout time.Duration) (string, error) {
	r.mu.Lock()
	if len(r.pending) > 0 {
		id := r.pending[r.rng.Intn(len(r.pending))]
		r.mu.Unlock()
		return id, nil
	}
	r.mu.Unlock()
	return r.CreateRoom(opts, initialTimeout)
}

// RemoveRoom destroys the room if it still exists. Calling it twice is fine.
func (r *Registry) RemoveRoom(id string) {
	room, ok := r.Room(id)
	if !ok {
		return
	}
	room.Destroy()
}

func (r *Registry) Room(id string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	return room, ok
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func (r *Registry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Shutdown destroys every room.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	all := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		all = append(all, room)
	}
	r.mu.Unlock()

	for _, room := range all {
		room.Destroy()
	}
	logger.Infof("[RM] Closed %d rooms", len(all))
}

// ValidID reports whether id has the shape of a room id.
func ValidID(id string) bool {
	if len(id) != idLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(idAlphabet, id[i]) < 0 {
			return false
		}
	}
	return true
}

func (r *Registry) newIDLocked() (string, error) {
	buf := make([]byte, idLength)
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		for i := range buf {
			buf[i] = idAlphabet[r.rng.Intn(len(idAlphabet))]
		}
		id := string(buf)
		if _, taken := r.rooms[id]; !taken {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

// unseal drops id from the pending pool. Called by a room when it seals.
func (r *Registry) unseal(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removePendingLocked(id)
}

// unregister forgets a destroyed room.
func (r *Registry) unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
	r.removePendingLocked(id)
}

func (r *Registry) removePendingLocked(id string) {
	for i, pending := range r.pending {
		if pending == id {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return
		}
	}
}

// seed draws a seed for a new game's random source.
func (r *Registry) seed() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int63()
}
