// models/models.go
package models

import (
	"time"
)

// MatchRecord is the archive entry written when a game reaches a
// terminal state. Rooms themselves are never persisted.
type MatchRecord struct {
	RoomCode        string    `json:"room_code"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	Mines           int       `json:"mines"`
	Won             bool      `json:"won"`
	DurationSeconds float64   `json:"duration_seconds"`
	HostID          string    `json:"host_id"`
	GuestID         string    `json:"guest_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// MatchStats is an aggregate over the archived matches.
type MatchStats struct {
	TotalGames int64 `json:"total_games"`
	Wins       int64 `json:"wins"`
	Losses     int64 `json:"losses"`
}
