package postgres

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/*
 * 'GameRecord' is the archived result of one finished game. Rooms live in
 * memory only; this is written once when a winner is decided and never read
 * back by the engine.
 */
type GameRecord struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	RoomID  string `gorm:"size:8;not null;index:idx_game_records_room" json:"room_id"`
	Winner  string `gorm:"size:16;not null;index:idx_game_records_winner" json:"winner"`
	Turns   int    `json:"turns"`
	Players int    `json:"players"`
	// Player names in join order
	Names datatypes.JSON `gorm:"type:jsonb" json:"names"`
	// Role per join index, "" for players who were absent at the start
	Roles datatypes.JSON `gorm:"type:jsonb" json:"roles"`
	// Join indices of the winning side
	Winners   pq.Int64Array `gorm:"type:integer[]" json:"winners"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `gorm:"index:idx_game_records_ended" json:"ended_at"`
	CreatedAt time.Time     `json:"created_at"`
}
