package game

import "strings"

// Role is the secret role tag held by one player for the length of a game.
type Role string

const (
	RoleNone      Role = ""
	RoleCivilian  Role = "civilian"
	RoleMafia     Role = "mafia"
	RoleDetective Role = "detective"
	RoleDoctor    Role = "doctor"
	RoleBodyguard Role = "bodyguard"
)

// Faction is the side a role plays for when deciding the winner.
type Faction string

const (
	FactionNone     Faction = ""
	FactionCivilian Faction = "civilian"
	FactionMafia    Faction = "mafia"
)

// ShieldKind says which elimination a protective role can cancel.
type ShieldKind int

const (
	ShieldNone ShieldKind = iota
	// ShieldNight cancels the mafia kill of the same night.
	ShieldNight
	// ShieldDay is picked at night and cancels the next day lynch.
	ShieldDay
)

// Capabilities is what a role may do besides talking and day-voting.
type Capabilities struct {
	NightVote   bool
	Investigate bool
	Protect     ShieldKind
}

// Acts reports whether the role has a night choice to make.
func (c Capabilities) Acts() bool {
	return c.Investigate || c.Protect != ShieldNone
}

var capabilities = map[Role]Capabilities{
	RoleMafia:     {NightVote: true},
	RoleDetective: {Investigate: true},
	RoleDoctor:    {Protect: ShieldNight},
	RoleBodyguard: {Protect: ShieldDay},
}

func (r Role) Capabilities() Capabilities {
	return capabilities[r]
}

func (r Role) Faction() Faction {
	switch r {
	case RoleNone:
		return FactionNone
	case RoleMafia:
		return FactionMafia
	default:
		return FactionCivilian
	}
}

// Optional reports whether the role can be listed in Options.OptionalRoles.
func (r Role) Optional() bool {
	return r.Capabilities().Acts()
}

// ParseRole accepts the role names used by clients and config files.
// "prostitute" is the old name of the bodyguard.
func ParseRole(name string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "civilian":
		return RoleCivilian, true
	case "mafia":
		return RoleMafia, true
	case "detective":
		return RoleDetective, true
	case "doctor":
		return RoleDoctor, true
	case "bodyguard", "prostitute":
		return RoleBodyguard, true
	}
	return RoleNone, false
}
