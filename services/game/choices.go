package game

// ChoiceKind tells the transport what an accepted choice was.
type ChoiceKind int

const (
	ChoiceNone ChoiceKind = iota
	ChoiceInvestigate
	ChoiceProtect
)

// Exposure is one known role.
type Exposure struct {
	Index      int
	Role       Role
	Eliminated bool
}

// ChoiceOutcome is the answer to HandleChoice. Reveal is set only for an
// accepted investigation and is meant for the actor alone.
type ChoiceOutcome struct {
	Accepted bool
	Reason   Reason
	Kind     ChoiceKind
	Reveal   *Exposure
}

func rejectChoice(reason Reason) ChoiceOutcome {
	return ChoiceOutcome{Reason: reason}
}

// HandleChoice applies a night action of actor on target. Only holders of an
// investigative or protective role may act, and only during the night vote.
func (g *Game) HandleChoice(actor, target int) ChoiceOutcome {
	switch {
	case g.Ended():
		return rejectChoice(ReasonGameOver)
	case !g.valid(actor) || g.eliminated[actor]:
		return rejectChoice(ReasonEliminated)
	case !g.phase.IsVoting || g.phase.IsDay:
		return rejectChoice(ReasonNotNightVoting)
	}

	caps := g.roles[actor].Capabilities()
	if !caps.Acts() {
		return rejectChoice(ReasonNoAction)
	}
	switch {
	case !g.valid(target):
		return rejectChoice(ReasonUnknownTarget)
	case target == actor:
		return rejectChoice(ReasonSelfTarget)
	case g.eliminated[target]:
		return rejectChoice(ReasonTargetEliminated)
	}

	if caps.Investigate {
		return g.investigate(actor, target)
	}
	return g.protect(actor, target)
}

// investigate reveals one role per detective and night vote.
func (g *Game) investigate(detective, target int) ChoiceOutcome {
	if g.investigated[detective] {
		return rejectChoice(ReasonAlreadyChose)
	}
	known := g.revealed[detective]
	if known[target] {
		return rejectChoice(ReasonAlreadyRevealed)
	}
	if g.investigated == nil {
		g.investigated = make(map[int]bool)
	}
	g.investigated[detective] = true
	if known == nil {
		known = make(map[int]bool)
		g.revealed[detective] = known
	}
	known[target] = true
	return ChoiceOutcome{
		Accepted: true,
		Kind:     ChoiceInvestigate,
		Reveal:   &Exposure{Index: target, Role: g.roles[target]},
	}
}

func (g *Game) protect(protector, target int) ChoiceOutcome {
	s := g.shields[protector]
	if s == nil {
		return rejectChoice(ReasonNoAction)
	}
	if target == s.previous {
		return rejectChoice(ReasonRepeatProtection)
	}
	s.target = target
	return ChoiceOutcome{Accepted: true, Kind: ChoiceProtect}
}

// shielded reports whether a living protector of the given kind covers
// candidate right now.
func (g *Game) shielded(candidate int, kind ShieldKind) bool {
	for protector, s := range g.shields {
		if s.kind == kind && s.target == candidate && !g.eliminated[protector] {
			return true
		}
	}
	return false
}

// rotateShields consumes the shields of the given kind once the elimination
// they guard against has been decided.
func (g *Game) rotateShields(kind ShieldKind) {
	for _, s := range g.shields {
		if s.kind != kind || s.target < 0 {
			continue
		}
		s.previous = s.target
		s.target = -1
	}
}

// Protection returns the current and previous target of a protector, -1 for
// none.
func (g *Game) Protection(protector int) (current, previous int, ok bool) {
	s := g.shields[protector]
	if s == nil {
		return -1, -1, false
	}
	return s.target, s.previous, true
}
