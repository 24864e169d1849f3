package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameType selects the scoring rules a room is played under.
type GameType string

const (
	GameYahtzee  GameType = "yahtzee"
	GameScrabble GameType = "scrabble"
	GameTally    GameType = "tally"
)

// GameTypes lists every accepted game type.
var GameTypes = []GameType{GameYahtzee, GameScrabble, GameTally}

// Valid reports whether g is one of the accepted game types.
func (g GameType) Valid() bool {
	for _, t := range GameTypes {
		if g == t {
			return true
		}
	}
	return false
}

type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	GameType  GameType  `gorm:"size:20;not null"`
	RoomCode  string    `gorm:"size:8;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	IsActive  bool      `gorm:"not null"`

	Players []Player `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Scores  []Score  `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`

	// PlayerCount is the number of active players, filled in by the service.
	PlayerCount int `gorm:"-"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r Room) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.RoomCode)
}
