package rooms

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"Mafia/services/game"
	"Mafia/services/scheduler"
	"Mafia/utils/logger"

	"golang.org/x/time/rate"
)

type player struct {
	id        string
	index     int
	name      string
	conn      Conn
	connected bool
	chat      *rate.Limiter
}

// Room is one lobby and, once started, the game played in it. Every exported
// method and every timer callback holds mu for its whole duration.
type Room struct {
	id       string
	opts     game.Options
	registry *Registry

	mu         sync.Mutex
	sealed     bool
	destroyed  bool
	players    []*player
	byID       map[string]*player
	owner      *player
	game       *game.Game
	startedAt  time.Time
	inactivity *scheduler.Deadline
	phase      *scheduler.Deadline
}

func newRoom(id string, opts game.Options, registry *Registry) *Room {
	return &Room{
		id:         id,
		opts:       opts.Clone(),
		registry:   registry,
		byID:       make(map[string]*player),
		inactivity: scheduler.NewDeadline(registry.sched),
		phase:      scheduler.NewDeadline(registry.sched),
	}
}

func (r *Room) ID() string {
	return r.id
}

func (r *Room) Options() game.Options {
	return r.opts.Clone()
}

func (r *Room) Sealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sealed
}

// Running reports whether a game is in progress.
func (r *Room) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game != nil
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Connect resolves a join attempt. A newcomer to a sealed room gets
// JoinSealed and the roster is left alone; a newcomer to an open room is
// appended; a known player gets conn as their new connection.
func (r *Room) Connect(playerID, name string, conn Conn) (JoinOutcome, error) {
	if playerID == "" {
		return JoinOutcome{}, ErrNoPlayerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return JoinOutcome{}, ErrRoomUnknown
	}

	p, known := r.byID[playerID]
	if !known && r.sealed {
		logger.Infof("[JOIN] [%s] Room is sealed, turning %s away", r.id, playerID)
		return JoinOutcome{Kind: JoinSealed}, nil
	}

	kind := JoinRejoin
	if !known {
		kind = JoinFirst
		p = r.addPlayerLocked(playerID, name)
	} else {
		if p.conn != nil && p.conn != conn {
			r.revokeScopesLocked(p.conn)
		}
		logger.Infof("[JOIN] [%s] Player %s (#%d) reconnects", r.id, p.name, p.index)
	}

	p.conn = conn
	p.connected = true
	r.grantScopesLocked(p)

	return JoinOutcome{
		Kind:     kind,
		Index:    p.index,
		Name:     p.name,
		Snapshot: r.snapshotLocked(p, kind == JoinFirst),
	}, nil
}

func (r *Room) addPlayerLocked(playerID, name string) *player {
	if name == "" {
		name = r.registry.cfg.DefaultName
	}
	p := &player{
		id:    playerID,
		index: len(r.players),
		name:  name,
		chat:  rate.NewLimiter(r.registry.cfg.ChatRate, r.registry.cfg.ChatBurst),
	}
	r.players = append(r.players, p)
	r.byID[playerID] = p
	logger.Infof("[JOIN] [%s] Player %s joins as #%d", r.id, name, p.index)

	if r.owner == nil {
		r.owner = p
		logger.Infof("[RM] [%s] Player %s owns the room", r.id, name)
	}
	if len(r.players) >= r.opts.MaxPlayers {
		r.sealLocked()
	}
	if r.game == nil {
		r.refreshLocked(r.registry.cfg.WaitingTimeout)
	}
	return p
}

// Disconnect marks the player gone. During a game the leaver is eliminated
// and their role becomes public. The room is destroyed when nobody is left.
// ok is false when the player was not connected.
func (r *Room) Disconnect(playerID string) (out LeftOutcome, ok bool) {
	return r.Release(playerID, nil)
}

// Release is Disconnect restricted to the player's current connection: a
// stale socket closing after its player reconnected elsewhere is ignored.
// A nil conn matches any connection.
func (r *Room) Release(playerID string, conn Conn) (out LeftOutcome, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return LeftOutcome{}, false
	}
	p, known := r.byID[playerID]
	if !known || !p.connected {
		return LeftOutcome{}, false
	}
	if conn != nil && p.conn != conn {
		return LeftOutcome{}, false
	}

	if p.conn != nil {
		r.revokeScopesLocked(p.conn)
	}
	p.conn = nil
	p.connected = false
	out.Index = p.index

	if r.game != nil {
		out.Role = r.game.PlayerLeft(p.index)
		logger.Infof("[DISCONNECT] [%s] Player %s (#%d, %s) leaves the game", r.id, p.name, p.index, out.Role)
	} else {
		logger.Infof("[DISCONNECT] [%s] Player %s (#%d) leaves", r.id, p.name, p.index)
	}

	if r.connectedLocked() == 0 {
		out.RoomClosed = true
		r.destroyLocked()
	}
	return out, true
}

// Seal closes the room to newcomers. It cannot be undone.
func (r *Room) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealLocked()
}

func (r *Room) sealLocked() {
	if r.sealed {
		return
	}
	r.sealed = true
	r.registry.unseal(r.id)
	logger.Infof("[RM] Room /id/%s/ is sealed", r.id)
}

// StartGame seals the room, deals roles and schedules the first phase. Only
// the owner may start, and only when no game is running. A finished game can
// be followed by a new one.
func (r *Room) StartGame(playerID string) (StartOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return StartOutcome{}, ErrRoomUnknown
	}
	p, known := r.byID[playerID]
	if !known || p != r.owner {
		return StartOutcome{}, ErrNotOwner
	}
	if r.game != nil {
		logger.Warningf("[GAME] [%s] Start requested while a game is running", r.id)
		return StartOutcome{}, ErrAlreadyStarted
	}

	r.sealLocked()

	connected := make([]bool, len(r.players))
	active := 0
	for i, pl := range r.players {
		connected[i] = pl.connected
		if pl.connected {
			active++
		}
	}
	g := game.New(connected, r.opts, rand.New(rand.NewSource(r.registry.seed())))
	r.game = g
	r.startedAt = r.registry.sched.Now()

	mafia := g.MafiaMembers()
	out := StartOutcome{Phase: g.Phase(), Players: make([]StartedPlayer, 0, len(r.players))}
	for _, pl := range r.players {
		sp := StartedPlayer{Index: pl.index, Role: g.Role(pl.index), Conn: pl.conn}
		if sp.Role == game.RoleMafia {
			sp.MafiaMembers = mafia
		}
		if pl.connected {
			r.grantScopesLocked(pl)
		}
		out.Players = append(out.Players, sp)
	}

	r.phase.Reset(r.opts.Timeout(g.Phase()), r.onPhaseDeadline)
	r.refreshLocked(r.registry.cfg.ActiveTimeout)

	logger.Infof("[GAME] [%s] Game started with %d players, %d mafia", r.id, active, len(mafia))
	r.registry.observer.GameStarted(r.id, active)
	return out, nil
}

// RefreshInactivityTimer re-arms the room's expiry.
func (r *Room) RefreshInactivityTimer(after time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return
	}
	r.refreshLocked(after)
}

func (r *Room) refreshLocked(after time.Duration) {
	r.inactivity.Reset(after, r.onInactivity)
}

// activityTimeoutLocked is the inactivity timeout for the room's state.
func (r *Room) activityTimeoutLocked() time.Duration {
	if r.game != nil {
		return r.registry.cfg.ActiveTimeout
	}
	return r.registry.cfg.WaitingTimeout
}

func (r *Room) onInactivity(generation uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || !r.inactivity.Current(generation) {
		return
	}
	r.inactivity.Fired(generation)
	logger.Infof("[RM] Room /id/%s/ expired", r.id)
	r.destroyLocked()
	r.registry.broadcaster.RoomClosed(r.id)
}

func (r *Room) onPhaseDeadline(generation uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || r.game == nil || !r.phase.Current(generation) {
		return
	}
	r.phase.Fired(generation)

	update := r.game.Advance()
	if v := update.Outvoted; v != nil {
		if v.Protected {
			logger.Infof("[VOTE] [%s] Player #%d was protected", r.id, v.Index)
		} else {
			logger.Infof("[VOTE] [%s] Player #%d (%s) is out", r.id, v.Index, v.Role)
			if p := r.players[v.Index]; p.conn != nil {
				p.conn.Leave(game.ScopeMafia)
				p.conn.Join(game.ScopeEliminated)
			}
		}
	}
	logger.Debugf("[GAME] [%s] Phase is now %s", r.id, update.Phase)
	r.registry.broadcaster.PhaseChanged(r.id, update)

	if update.Winner != game.FactionNone {
		r.endGameLocked(update)
		return
	}
	r.phase.Reset(r.opts.Timeout(update.Phase), r.onPhaseDeadline)
}

func (r *Room) endGameLocked(update game.PhaseUpdate) {
	g := r.game
	roles := g.Roles()
	result := GameResult{
		RoomID:    r.id,
		Winner:    update.Winner,
		Turns:     update.Phase.Turn,
		Names:     make([]string, len(r.players)),
		Roles:     roles,
		StartedAt: r.startedAt,
		EndedAt:   r.registry.sched.Now(),
	}
	for i, p := range r.players {
		result.Names[i] = p.name
		if roles[i] != game.RoleNone && roles[i].Faction() == update.Winner {
			result.Winners = append(result.Winners, i)
		}
		if p.conn != nil {
			p.conn.Leave(game.ScopeMafia)
			p.conn.Leave(game.ScopeEliminated)
		}
	}

	r.game = nil
	r.phase.Stop()
	logger.Infof("[GAME] [%s] Game over after %d turns, %s wins", r.id, result.Turns, update.Winner)
	r.registry.observer.GameEnded(result)
}

// Destroy stops both timers and unregisters the room. Later calls on the
// room fail with ErrRoomUnknown.
func (r *Room) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyLocked()
}

func (r *Room) destroyLocked() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.inactivity.Stop()
	r.phase.Stop()
	r.game = nil
	r.registry.unregister(r.id)
	logger.Infof("[RM] Room /id/%s/ removed", r.id)
	r.registry.observer.RoomDestroyed(r.id)
}

// memberLocked resolves a connected player of this room. A conn other than
// the one the player last acknowledged from is treated as a stranger.
func (r *Room) memberLocked(playerID string, conn Conn) (*player, error) {
	if r.destroyed {
		return nil, ErrRoomUnknown
	}
	p, ok := r.byID[playerID]
	if !ok || !p.connected {
		return nil, ErrNotMember
	}
	if conn != nil && p.conn != conn {
		return nil, ErrNotMember
	}
	return p, nil
}

func (r *Room) connectedLocked() int {
	n := 0
	for _, p := range r.players {
		if p.connected {
			n++
		}
	}
	return n
}

func (r *Room) grantScopesLocked(p *player) {
	if p.conn == nil {
		return
	}
	p.conn.Join(game.ScopeRoom)
	if r.game == nil {
		return
	}
	for _, scope := range r.game.Scopes(p.index) {
		p.conn.Join(scope)
	}
}

func (r *Room) revokeScopesLocked(conn Conn) {
	conn.Leave(game.ScopeRoom)
	conn.Leave(game.ScopeMafia)
	conn.Leave(game.ScopeEliminated)
}

func (r *Room) snapshotLocked(p *player, first bool) Snapshot {
	s := Snapshot{
		PlayerIndex:       p.index,
		IsFirstConnection: first,
		CanStartGame:      r.game == nil && p == r.owner,
		PlayerList:        make([]string, len(r.players)),
		Disconnected:      []int{},
		Options:           r.opts.Clone(),
	}
	for i, pl := range r.players {
		s.PlayerList[i] = pl.name
		if !pl.connected {
			s.Disconnected = append(s.Disconnected, i)
		}
	}

	g := r.game
	if g == nil {
		return s
	}
	state := g.Phase()
	s.State = &state
	s.Role = g.Role(p.index)
	s.Eliminated = g.Eliminated()
	s.ExposedPlayers = make(map[int]ExposedRole)
	for i, e := range g.Exposed(p.index) {
		s.ExposedPlayers[i] = ExposedRole{Role: e.Role, Eliminated: e.Eliminated}
	}
	s.SecondsTillTimeout = int(math.Ceil(r.phase.Remaining().Seconds()))
	return s
}
