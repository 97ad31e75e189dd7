package entity

import "time"

type Score struct {
	PlayerID  string    `json:"player_id"`
	Steps     int       `json:"steps"`
	Time      int       `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	Name  string `json:"username"`
	Steps int    `json:"steps"`
	Time  int    `json:"time"`
}
