package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player is a named participant of one room. Among active players of a room
// the name is unique; inactive players keep their name and can be shadowed
// by a new player joining under it.
type Player struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"size:100;not null;uniqueIndex:idx_players_room_active_name,where:is_active = true"`
	RoomID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_players_room_active_name,where:is_active = true"`
	JoinedAt time.Time `gorm:"not null"`
	IsActive bool      `gorm:"not null"`

	Room   *Room   `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Scores []Score `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.JoinedAt.IsZero() {
		p.JoinedAt = tx.NowFunc()
	}
	return nil
}

func (p Player) String() string {
	if p.Room == nil {
		return p.Name
	}
	return fmt.Sprintf("%s in %s", p.Name, p.Room.Name)
}
