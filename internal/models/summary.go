package models

// RoomSummary is the per-room standings: totals by player name over every
// score of the room and the number of distinct rounds played.
type RoomSummary struct {
	RoomName     string         `json:"room_name"`
	GameType     GameType       `json:"game_type"`
	PlayerTotals map[string]int `json:"player_totals"`
	TotalRounds  int            `json:"total_rounds"`
}
