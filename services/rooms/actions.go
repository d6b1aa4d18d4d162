package rooms

import (
	"strings"
	"unicode/utf8"

	"Mafia/services/game"
	"Mafia/utils/logger"
)

const defaultMaxMessageLen = 500

// Vote casts playerID's vote against the player at target. conn must be the
// player's current connection; a nil conn skips that check.
func (r *Room) Vote(playerID string, conn Conn, target int) (VoteOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.memberLocked(playerID, conn)
	if err != nil {
		return VoteOutcome{}, err
	}
	out := VoteOutcome{Voter: p.index, Target: target}
	if r.game == nil {
		out.Reason = ReasonNoGame
		return out, nil
	}

	out.VoteOutcome = r.game.HandleVote(p.index, target)
	if !out.Accepted {
		logger.Debugf("[VOTE] [%s] #%d -> #%d rejected: %s", r.id, p.index, target, out.Reason)
		return out, nil
	}
	logger.Infof("[VOTE] [%s] #%d votes against #%d (%s)", r.id, p.index, target, out.Scope)
	r.refreshLocked(r.activityTimeoutLocked())
	return out, nil
}

// Choice applies playerID's night action to the player at target.
func (r *Room) Choice(playerID string, conn Conn, target int) (ChoiceOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.memberLocked(playerID, conn)
	if err != nil {
		return ChoiceOutcome{}, err
	}
	out := ChoiceOutcome{Actor: p.index, Target: target}
	if r.game == nil {
		out.Reason = ReasonNoGame
		return out, nil
	}

	out.ChoiceOutcome = r.game.HandleChoice(p.index, target)
	if !out.Accepted {
		logger.Debugf("[GAME] [%s] Choice #%d -> #%d rejected: %s", r.id, p.index, target, out.Reason)
		return out, nil
	}
	logger.Debugf("[GAME] [%s] #%d (%s) chose #%d", r.id, p.index, r.game.Role(p.index), target)
	r.refreshLocked(r.activityTimeoutLocked())
	return out, nil
}

// Chat routes a message to the audience the speaker may currently reach.
func (r *Room) Chat(playerID string, conn Conn, message string) (ChatOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.memberLocked(playerID, conn)
	if err != nil {
		return ChatOutcome{}, err
	}
	out := ChatOutcome{Index: p.index, Name: p.name, Message: message}

	maxLen := r.registry.cfg.MaxMessageLen
	if maxLen <= 0 {
		maxLen = defaultMaxMessageLen
	}
	switch {
	case strings.TrimSpace(message) == "":
		out.Reason = ReasonEmptyMessage
		return out, nil
	case utf8.RuneCountInString(message) > maxLen:
		out.Reason = ReasonMessageTooLong
		return out, nil
	}

	out.Scope = game.ScopeRoom
	if r.game != nil {
		scope, ok := r.game.ChatScope(p.index)
		if !ok {
			out.Reason = game.ReasonNoChatScope
			return out, nil
		}
		out.Scope = scope
	}

	if !p.chat.AllowN(r.registry.sched.Now(), 1) {
		out.Reason = ReasonRateLimited
		logger.Debugf("[CHAT] [%s] %s is flooding", r.id, p.name)
		return out, nil
	}

	out.Accepted = true
	logger.Infof("[CHAT] [%s] [%s] %s: %s", r.id, out.Scope, p.name, message)
	r.refreshLocked(r.activityTimeoutLocked())
	return out, nil
}
