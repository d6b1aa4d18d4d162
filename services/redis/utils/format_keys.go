package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

// Fields of the statistics hash.
const (
	FieldRoomsCreated  = "rooms_created"
	FieldGamesStarted  = "games_started"
	FieldGamesFinished = "games_finished"
	FieldPlayersDealt  = "players_dealt"
	winsFieldPrefix    = "wins:"
)

func FormatStatsKey() string {
	return "mafia:stats"
}

func FormatWinsField(faction string) string {
	return fmt.Sprintf("%s%s", winsFieldPrefix, faction)
}

// ParseWinsField returns the faction of a wins field.
func ParseWinsField(field string) (string, bool) {
	if len(field) <= len(winsFieldPrefix) || field[:len(winsFieldPrefix)] != winsFieldPrefix {
		return "", false
	}
	return field[len(winsFieldPrefix):], true
}
