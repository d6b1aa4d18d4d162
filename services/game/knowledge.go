package game

// Exposed returns every role viewer currently knows about other players,
// keyed by index: fellow mafia, the detective's findings and every
// eliminated player's public role. Eliminations are applied last, they are
// public to everyone.
func (g *Game) Exposed(viewer int) map[int]Exposure {
	out := make(map[int]Exposure)

	if g.valid(viewer) && g.roles[viewer] == RoleMafia {
		for _, i := range g.MafiaMembers() {
			out[i] = Exposure{Index: i, Role: RoleMafia}
		}
	}
	for target := range g.revealed[viewer] {
		out[target] = Exposure{Index: target, Role: g.roles[target]}
	}
	for i := range g.eliminated {
		out[i] = Exposure{Index: i, Role: g.roles[i], Eliminated: true}
	}
	return out
}

// ChatScope is where speaker's chat message goes. Ghosts only talk to ghosts,
// living mafia talk among themselves at night, everybody talks in daylight.
// Living non-mafia have nowhere to talk at night.
func (g *Game) ChatScope(speaker int) (Scope, bool) {
	switch {
	case g.eliminated[speaker]:
		return ScopeEliminated, true
	case g.phase.IsDay:
		return ScopeRoom, true
	case g.Role(speaker) == RoleMafia:
		return ScopeMafia, true
	default:
		return ScopeRoom, false
	}
}

// Scopes lists the restricted audiences index belongs to. Every player is
// also in the whole-room scope, which is not listed.
func (g *Game) Scopes(index int) []Scope {
	if !g.valid(index) {
		return nil
	}
	if g.eliminated[index] {
		return []Scope{ScopeEliminated}
	}
	if g.roles[index] == RoleMafia && !g.Ended() {
		return []Scope{ScopeMafia}
	}
	return nil
}
