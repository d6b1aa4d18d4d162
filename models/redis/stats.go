package redis

// Stats are the live counters kept in Redis. LiveRooms and PendingRooms come
// from the in-memory registry when the snapshot is served.
type Stats struct {
	RoomsCreated  int64            `json:"rooms_created"`
	GamesStarted  int64            `json:"games_started"`
	GamesFinished int64            `json:"games_finished"`
	PlayersDealt  int64            `json:"players_dealt"`
	Wins          map[string]int64 `json:"wins"`
	LiveRooms     int              `json:"live_rooms"`
	PendingRooms  int              `json:"pending_rooms"`
}
