package rooms

import "Mafia/services/game"

// JoinKind tells how a Connect call was resolved.
type JoinKind int

const (
	// JoinSealed: a newcomer tried to enter a sealed room. Nothing changed.
	JoinSealed JoinKind = iota
	// JoinFirst: a newcomer was added at the next index.
	JoinFirst
	// JoinRejoin: a known player came back with a new connection.
	JoinRejoin
)

func (k JoinKind) String() string {
	switch k {
	case JoinFirst:
		return "first"
	case JoinRejoin:
		return "rejoin"
	default:
		return "sealed"
	}
}

type JoinOutcome struct {
	Kind     JoinKind
	Index    int
	Name     string
	Snapshot Snapshot
}

// LeftOutcome is what the rest of the room is told when a player leaves.
// Role is set when the leaver was in a running game.
type LeftOutcome struct {
	Index      int       `json:"playerIndex"`
	Role       game.Role `json:"role,omitempty"`
	RoomClosed bool      `json:"-"`
}

// StartedPlayer is the private game start notice for one player. Conn is
// nil for players who are not connected.
type StartedPlayer struct {
	Index        int
	Role         game.Role
	MafiaMembers []int
	Conn         Conn
}

type StartOutcome struct {
	Phase   game.Phase
	Players []StartedPlayer
}

type VoteOutcome struct {
	game.VoteOutcome
	Voter  int
	Target int
}

type ChoiceOutcome struct {
	game.ChoiceOutcome
	Actor  int
	Target int
}

type ChatOutcome struct {
	Accepted bool
	Reason   game.Reason
	Scope    game.Scope
	Index    int
	Name     string
	Message  string
}

// ExposedRole is one entry of Snapshot.ExposedPlayers.
type ExposedRole struct {
	Role       game.Role `json:"role"`
	Eliminated bool      `json:"eliminated"`
}

// Snapshot is the "roomData" message a player receives on every join.
type Snapshot struct {
	PlayerIndex       int          `json:"playerIndex"`
	IsFirstConnection bool         `json:"isFirstConnection"`
	CanStartGame      bool         `json:"canStartGame"`
	PlayerList        []string     `json:"playerList"`
	Disconnected      []int        `json:"disconnected"`
	Options           game.Options `json:"options"`

	State              *game.Phase         `json:"state,omitempty"`
	Role               game.Role           `json:"role,omitempty"`
	Eliminated         []int               `json:"eliminated,omitempty"`
	ExposedPlayers     map[int]ExposedRole `json:"exposedPlayers,omitempty"`
	SecondsTillTimeout int                 `json:"secondsTillTimeout,omitempty"`
}
