package dto

import (
	"time"

	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/google/uuid"
)

type PlayerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Room     uuid.UUID `json:"room"`
	JoinedAt time.Time `json:"joined_at"`
	IsActive bool      `json:"is_active"`
}

type ScoreResponse struct {
	ID          uuid.UUID `json:"id"`
	Player      uuid.UUID `json:"player"`
	PlayerName  string    `json:"player_name"`
	Room        uuid.UUID `json:"room"`
	RoundNumber int       `json:"round_number"`
	ScoreValue  int       `json:"score_value"`
	Category    *string   `json:"category"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoomResponse is the full room: every player, active or not, every score,
// and the count of active players.
type RoomResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	GameType    models.GameType  `json:"game_type"`
	RoomCode    string           `json:"room_code"`
	CreatedAt   time.Time        `json:"created_at"`
	IsActive    bool             `json:"is_active"`
	Players     []PlayerResponse `json:"players"`
	Scores      []ScoreResponse  `json:"scores"`
	PlayerCount int              `json:"player_count"`
}

// RoomCreatedResponse is returned by room creation, before any player exists.
type RoomCreatedResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	GameType  models.GameType `json:"game_type"`
	RoomCode  string          `json:"room_code"`
	CreatedAt time.Time       `json:"created_at"`
	IsActive  bool            `json:"is_active"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewPlayerResponse(p models.Player) PlayerResponse {
	return PlayerResponse{
		ID:       p.ID,
		Name:     p.Name,
		Room:     p.RoomID,
		JoinedAt: p.JoinedAt.UTC(),
		IsActive: p.IsActive,
	}
}

func NewPlayerResponses(players []models.Player) []PlayerResponse {
	out := make([]PlayerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, NewPlayerResponse(p))
	}
	return out
}

func NewScoreResponse(s models.Score) ScoreResponse {
	resp := ScoreResponse{
		ID:          s.ID,
		Player:      s.PlayerID,
		PlayerName:  s.PlayerName(),
		Room:        s.RoomID,
		RoundNumber: s.RoundNumber,
		ScoreValue:  s.ScoreValue,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt.UTC(),
	}
	if s.Category != models.CategoryNone {
		category := string(s.Category)
		resp.Category = &category
	}
	return resp
}

func NewScoreResponses(scores []models.Score) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, NewScoreResponse(s))
	}
	return out
}

// NewRoomResponse expects the room's players, scores and player count to be loaded.
func NewRoomResponse(r models.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		GameType:    r.GameType,
		RoomCode:    r.RoomCode,
		CreatedAt:   r.CreatedAt.UTC(),
		IsActive:    r.IsActive,
		Players:     NewPlayerResponses(r.Players),
		Scores:      NewScoreResponses(r.Scores),
		PlayerCount: r.PlayerCount,
	}
}

func NewRoomResponses(rooms []models.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, NewRoomResponse(r))
	}
	return out
}

func NewRoomCreatedResponse(r models.Room) RoomCreatedResponse {
	return RoomCreatedResponse{
		ID:        r.ID,
		Name:      r.Name,
		GameType:  r.GameType,
		RoomCode:  r.RoomCode,
		CreatedAt: r.CreatedAt.UTC(),
		IsActive:  r.IsActive,
	}
}
