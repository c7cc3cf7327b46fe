package models

import "time"

// RosterPlayer is one entry of the active player roster.
type RosterPlayer struct {
	FullName string `json:"full_name"`
	ID       int    `json:"id"`
}

// GameRecord is one game line from a player's game log, ordered by game date.
type GameRecord struct {
	Date      time.Time `json:"date"`
	Points    float64   `json:"pts"`
	Rebounds  float64   `json:"reb"`
	Assists   float64   `json:"ast"`
	PlusMinus float64   `json:"plus_minus"`
}

// PlayerStats is the most recent game line exposed by the stats endpoint.
type PlayerStats struct {
	Player    string  `json:"player"`
	Date      string  `json:"date"`
	Points    float64 `json:"pts"`
	Rebounds  float64 `json:"reb"`
	Assists   float64 `json:"ast"`
	PlusMinus float64 `json:"plus_minus"`
}
