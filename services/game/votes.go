package game

import "sort"

// VoteOutcome is the answer to HandleVote. Scope is the audience that should
// see an accepted vote.
type VoteOutcome struct {
	Accepted bool
	Reason   Reason
	Scope    Scope
}

func rejectVote(reason Reason) VoteOutcome {
	return VoteOutcome{Reason: reason}
}

// HandleVote records voter's vote against target. Day votes are open to every
// living player, night votes to living mafia only; one vote per phase.
func (g *Game) HandleVote(voter, target int) VoteOutcome {
	switch {
	case g.Ended():
		return rejectVote(ReasonGameOver)
	case !g.valid(voter) || g.eliminated[voter]:
		return rejectVote(ReasonEliminated)
	case !g.phase.IsVoting:
		return rejectVote(ReasonNotVoting)
	case !g.phase.IsDay && !g.roles[voter].Capabilities().NightVote:
		return rejectVote(ReasonNotMafia)
	}
	if _, voted := g.votes[voter]; voted {
		return rejectVote(ReasonAlreadyVoted)
	}
	switch {
	case !g.valid(target):
		return rejectVote(ReasonUnknownTarget)
	case target == voter:
		return rejectVote(ReasonSelfTarget)
	case g.eliminated[target]:
		return rejectVote(ReasonTargetEliminated)
	}

	g.votes[voter] = target
	scope := ScopeRoom
	if !g.phase.IsDay {
		scope = ScopeMafia
	}
	return VoteOutcome{Accepted: true, Scope: scope}
}

// Votes returns a copy of the current voter -> target map.
func (g *Game) Votes() map[int]int {
	out := make(map[int]int, len(g.votes))
	for voter, target := range g.votes {
		out[voter] = target
	}
	return out
}

// ProcessVoteResult closes the current vote. It returns nil when nobody
// voted. Ties at the top are broken uniformly at random. A candidate covered
// by a protective role survives and stays unrevealed. Votes are cleared
// whatever happens.
func (g *Game) ProcessVoteResult() *VoteResult {
	votes := g.votes
	g.votes = make(map[int]int)

	tally := make(map[int]int)
	for _, target := range votes {
		if g.eliminated[target] {
			continue
		}
		tally[target]++
	}

	kind := ShieldNight
	if g.phase.IsDay {
		kind = ShieldDay
	}
	defer g.rotateShields(kind)

	if len(tally) == 0 {
		return nil
	}

	candidates := topCandidates(tally)
	candidate := candidates[g.rng.Intn(len(candidates))]

	if g.shielded(candidate, kind) {
		return &VoteResult{Index: candidate, Protected: true}
	}
	return &VoteResult{Index: candidate, Role: g.roles[candidate]}
}

// topCandidates returns every target tied at the maximum tally, ascending.
func topCandidates(tally map[int]int) []int {
	top := 0
	for _, n := range tally {
		if n > top {
			top = n
		}
	}
	var out []int
	for target, n := range tally {
		if n == top {
			out = append(out, target)
		}
	}
	sort.Ints(out)
	return out
}
