package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category tags a Yahtzee score with the box it was written into. The empty
// category means an untagged score and is stored as '' so that it takes part
// in the composite unique index like any other value.
type Category string

const (
	CategoryNone          Category = ""
	CategoryOnes          Category = "ones"
	CategoryTwos          Category = "twos"
	CategoryThrees        Category = "threes"
	CategoryFours         Category = "fours"
	CategoryFives         Category = "fives"
	CategorySixes         Category = "sixes"
	CategoryThreeOfAKind  Category = "three_of_a_kind"
	CategoryFourOfAKind   Category = "four_of_a_kind"
	CategoryFullHouse     Category = "full_house"
	CategorySmallStraight Category = "small_straight"
	CategoryLargeStraight Category = "large_straight"
	CategoryYahtzee       Category = "yahtzee"
	CategoryChance        Category = "chance"
)

// YahtzeeCategories lists the thirteen boxes of a Yahtzee score card in card order.
var YahtzeeCategories = []Category{
	CategoryOnes, CategoryTwos, CategoryThrees, CategoryFours, CategoryFives, CategorySixes,
	CategoryThreeOfAKind, CategoryFourOfAKind, CategoryFullHouse,
	CategorySmallStraight, CategoryLargeStraight, CategoryYahtzee, CategoryChance,
}

// Valid reports whether c is untagged or one of the Yahtzee boxes.
func (c Category) Valid() bool {
	if c == CategoryNone {
		return true
	}
	for _, y := range YahtzeeCategories {
		if c == y {
			return true
		}
	}
	return false
}

type Score struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlayerID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_scores_player_room_round_category"`
	RoomID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_scores_player_room_round_category"`
	RoundNumber int       `gorm:"not null;check:round_number >= 1;uniqueIndex:idx_scores_player_room_round_category"`
	ScoreValue  int       `gorm:"not null"`
	Category    Category  `gorm:"size:20;not null;default:'';uniqueIndex:idx_scores_player_room_round_category"`
	Notes       string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null"`

	Player *Player `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (s *Score) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// PlayerName returns the name of the loaded player, or "" when the player
// was not preloaded.
func (s Score) PlayerName() string {
	if s.Player == nil {
		return ""
	}
	return s.Player.Name
}

func (s Score) String() string {
	return fmt.Sprintf("%s - Round %d: %d", s.PlayerName(), s.RoundNumber, s.ScoreValue)
}
