package dto

import (
	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/google/uuid"
)

// Input shapes. Fields not listed here (id, room_code, created_at, ...) are
// server-assigned or frozen and are silently ignored when sent.

type CreateRoomRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	GameType models.GameType `json:"game_type" validate:"required,game_type"`
}

// UpdateRoomRequest serves both PUT and PATCH; PUT additionally requires
// name and game_type.
type UpdateRoomRequest struct {
	Name     *string          `json:"name" validate:"omitnil,min=1,max=100"`
	GameType *models.GameType `json:"game_type" validate:"omitnil,game_type"`
	IsActive *bool            `json:"is_active"`
}

type JoinRoomRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreatePlayerRequest struct {
	Name     string     `json:"name" validate:"required,max=100"`
	Room     *uuid.UUID `json:"room" validate:"required"`
	IsActive *bool      `json:"is_active"`
}

// UpdatePlayerRequest cannot move a player to another room.
type UpdatePlayerRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}

type CreateScoreRequest struct {
	Player      *uuid.UUID       `json:"player" validate:"required"`
	Room        *uuid.UUID       `json:"room" validate:"required"`
	RoundNumber *int             `json:"round_number" validate:"omitnil,min=1"`
	ScoreValue  *int             `json:"score_value" validate:"required"`
	Category    *models.Category `json:"category" validate:"omitnil,category"`
	Notes       string           `json:"notes"`
}

// UpdateScoreRequest holds the only mutable score fields. player, room,
// round_number and category are dropped by the decoder.
type UpdateScoreRequest struct {
	ScoreValue *int    `json:"score_value"`
	Notes      *string `json:"notes"`
}
