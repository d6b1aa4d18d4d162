package game

import (
	"math/rand"
	"sort"
)

// Scope is a broadcast audience inside one room.
type Scope int

const (
	ScopeRoom Scope = iota
	ScopeMafia
	ScopeEliminated
)

func (s Scope) String() string {
	switch s {
	case ScopeMafia:
		return "mafia"
	case ScopeEliminated:
		return "eliminated"
	default:
		return "room"
	}
}

// shield is the state of one protective player.
type shield struct {
	kind     ShieldKind
	target   int
	previous int
}

// VoteResult is the outcome of closing a voting phase. Role is empty when the
// candidate was protected: survivors keep their secret.
type VoteResult struct {
	Index     int  `json:"playerIndex"`
	Role      Role `json:"role"`
	Protected bool `json:"-"`
}

// PhaseUpdate is what a phase transition produced.
type PhaseUpdate struct {
	Phase    Phase
	Outvoted *VoteResult
	Winner   Faction
}

// Game is one played instance of the rules. It knows players only by their
// join index; the owning room keeps names and connections. A Game is not
// safe for concurrent use: the room serializes every call.
type Game struct {
	opts       Options
	rng        *rand.Rand
	phase      Phase
	roles      []Role
	eliminated map[int]bool
	revealed   map[int]map[int]bool
	votes      map[int]int
	shields    map[int]*shield
	winner     Faction

	// detectives who already investigated during the current phase
	investigated map[int]bool
}

// New assigns roles and returns a game sitting in the intro night.
// connected[i] tells whether player i is present; absent players get no role
// and start eliminated.
func New(connected []bool, opts Options, rng *rand.Rand) *Game {
	g := &Game{
		opts:       opts.Clone(),
		rng:        rng,
		phase:      InitialPhase(),
		roles:      make([]Role, len(connected)),
		eliminated: make(map[int]bool),
		revealed:   make(map[int]map[int]bool),
		votes:      make(map[int]int),
		shields:    make(map[int]*shield),
	}
	g.assignRoles(connected)
	return g
}

func (g *Game) assignRoles(connected []bool) {
	civilians := make([]int, 0, len(connected))
	for i, present := range connected {
		if !present {
			g.roles[i] = RoleNone
			g.eliminated[i] = true
			continue
		}
		g.roles[i] = RoleCivilian
		civilians = append(civilians, i)
	}

	coeff := g.opts.MafiaCoeff
	if coeff < 1 {
		coeff = 1
	}
	mafiaCount := len(civilians) / coeff
	for n := 0; n < mafiaCount && len(civilians) > 0; n++ {
		var picked int
		picked, civilians = g.draw(civilians)
		g.roles[picked] = RoleMafia
	}

	for _, role := range g.opts.OptionalRoles {
		if len(civilians) == 0 {
			break
		}
		var picked int
		picked, civilians = g.draw(civilians)
		g.roles[picked] = role
		if kind := role.Capabilities().Protect; kind != ShieldNone {
			g.shields[picked] = &shield{kind: kind, target: -1, previous: -1}
		}
	}
}

// draw removes a uniformly random element from pool.
func (g *Game) draw(pool []int) (int, []int) {
	k := g.rng.Intn(len(pool))
	picked := pool[k]
	pool[k] = pool[len(pool)-1]
	return picked, pool[:len(pool)-1]
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) Options() Options {
	return g.opts.Clone()
}

func (g *Game) PlayerCount() int {
	return len(g.roles)
}

func (g *Game) Role(index int) Role {
	if !g.valid(index) {
		return RoleNone
	}
	return g.roles[index]
}

func (g *Game) Roles() []Role {
	return append([]Role(nil), g.roles...)
}

func (g *Game) IsEliminated(index int) bool {
	return g.eliminated[index]
}

// Eliminated lists eliminated indices in ascending order.
func (g *Game) Eliminated() []int {
	out := make([]int, 0, len(g.eliminated))
	for i := range g.eliminated {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// MafiaMembers lists every mafia index, eliminated or not.
func (g *Game) MafiaMembers() []int {
	var out []int
	for i, r := range g.roles {
		if r == RoleMafia {
			out = append(out, i)
		}
	}
	return out
}

// Ended reports whether a winner has been decided.
func (g *Game) Ended() bool {
	return g.winner != FactionNone
}

// Advance performs one timer-driven transition: closes a vote if one was
// open, moves the phase and checks for a winner.
func (g *Game) Advance() PhaseUpdate {
	if g.Ended() {
		return PhaseUpdate{Phase: g.phase, Winner: g.winner}
	}

	var outvoted *VoteResult
	if g.phase.IsVoting {
		outvoted = g.ProcessVoteResult()
		if outvoted != nil && !outvoted.Protected {
			g.eliminate(outvoted.Index)
		}
	}
	g.phase = g.phase.next()
	g.investigated = nil

	g.winner = g.Winner()
	return PhaseUpdate{Phase: g.phase, Outvoted: outvoted, Winner: g.winner}
}

// Winner counts survivors by faction. No mafia left means civilians win;
// mafia matching or outnumbering the rest means mafia wins.
func (g *Game) Winner() Faction {
	mafia, civilians := 0, 0
	for i, r := range g.roles {
		if g.eliminated[i] || r == RoleNone {
			continue
		}
		if r.Faction() == FactionMafia {
			mafia++
		} else {
			civilians++
		}
	}
	switch {
	case mafia == 0:
		return FactionCivilian
	case civilians <= mafia:
		return FactionMafia
	default:
		return FactionNone
	}
}

// PlayerLeft eliminates a player who dropped out mid-game and returns the
// role that now becomes public.
func (g *Game) PlayerLeft(index int) Role {
	if !g.valid(index) {
		return RoleNone
	}
	g.eliminate(index)
	delete(g.votes, index)
	for voter, target := range g.votes {
		if target == index {
			delete(g.votes, voter)
		}
	}
	return g.roles[index]
}

func (g *Game) eliminate(index int) {
	g.eliminated[index] = true
}

func (g *Game) valid(index int) bool {
	return index >= 0 && index < len(g.roles)
}
