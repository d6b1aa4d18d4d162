// Package records archives finished games in PostgreSQL.
package records

import (
	"encoding/json"
	"errors"
	"fmt"

	models "Mafia/models/postgres"
	"Mafia/services/game"
	"Mafia/services/rooms"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

var ErrNoArchive = errors.New("game archive is disabled")

type Archive struct {
	db *gorm.DB
}

func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

// NewGameRecord converts a finished game into its archived form.
func NewGameRecord(result rooms.GameResult) (*models.GameRecord, error) {
	names, err := json.Marshal(result.Names)
	if err != nil {
		return nil, fmt.Errorf("error marshaling names: %w", err)
	}
	roles, err := json.Marshal(result.Roles)
	if err != nil {
		return nil, fmt.Errorf("error marshaling roles: %w", err)
	}

	players := 0
	for _, r := range result.Roles {
		if r != game.RoleNone {
			players++
		}
	}
	winners := make(pq.Int64Array, len(result.Winners))
	for i, index := range result.Winners {
		winners[i] = int64(index)
	}

	return &models.GameRecord{
		RoomID:    result.RoomID,
		Winner:    string(result.Winner),
		Turns:     result.Turns,
		Players:   players,
		Names:     names,
		Roles:     roles,
		Winners:   winners,
		StartedAt: result.StartedAt,
		EndedAt:   result.EndedAt,
	}, nil
}

// Save stores a finished game.
func (a *Archive) Save(result rooms.GameResult) (*models.GameRecord, error) {
	if a == nil || a.db == nil {
		return nil, ErrNoArchive
	}
	record, err := NewGameRecord(result)
	if err != nil {
		return nil, err
	}
	if err := a.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("error archiving game of room %s: %w", result.RoomID, err)
	}
	return record, nil
}

// Recent returns the latest finished games, newest first. limit is clamped
// to (0, MaxRecentLimit].
func (a *Archive) Recent(limit int) ([]models.GameRecord, error) {
	if a == nil || a.db == nil {
		return nil, ErrNoArchive
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	var records []models.GameRecord
	if err := a.db.Order("ended_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}
	return records, nil
}

// ByRoom returns every archived game of one room, newest first.
func (a *Archive) ByRoom(roomID string) ([]models.GameRecord, error) {
	if a == nil || a.db == nil {
		return nil, ErrNoArchive
	}
	var records []models.GameRecord
	err := a.db.Where("room_id = ?", roomID).Order("ended_at DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("error listing games of room %s: %w", roomID, err)
	}
	return records, nil
}
