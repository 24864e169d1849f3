package repositories

import (
	"context"

	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	// FindDetailed loads the room with its players and scores.
	FindDetailed(ctx context.Context, id uuid.UUID) (*models.Room, error)
	FindByCode(ctx context.Context, code string, activeOnly bool) (*models.Room, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Lock takes a row lock on the room for the rest of the transaction.
	Lock(ctx context.Context, id uuid.UUID) (*models.Room, error)
}

type roomRepo struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error
	return translate("create room", err)
}

func (r *roomRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, translate("find room", err)
	}
	return &room, nil
}

func (r *roomRepo) FindDetailed(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := r.detailed(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, translate("find room", err)
	}
	return &room, nil
}

func (r *roomRepo) FindByCode(ctx context.Context, code string, activeOnly bool) (*models.Room, error) {
	var room models.Room
	q := r.detailed(ctx).Where("room_code = ?", code)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.First(&room).Error; err != nil {
		return nil, translate("find room by code", err)
	}
	return &room, nil
}

// CodeExists checks every room, inactive ones included.
func (r *roomRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Where("room_code = ?", code).Count(&count).Error
	if err != nil {
		return false, translate("check room code", err)
	}
	return count > 0, nil
}

func (r *roomRepo) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.detailed(ctx).Order("created_at desc").Find(&rooms).Error; err != nil {
		return nil, translate("list rooms", err)
	}
	return rooms, nil
}

func (r *roomRepo) Update(ctx context.Context, room *models.Room) error {
	res := r.db.WithContext(ctx).Model(room).
		Select("name", "game_type", "is_active").
		Updates(room)
	if res.Error != nil {
		return translate("update room", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("update room", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes the room with its players and scores. Callers should run it
// inside a transaction; the explicit deletes keep the cascade working on
// engines without foreign key enforcement.
func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Delete(&models.Score{}, "room_id = ?", id).Error; err != nil {
		return translate("delete room scores", err)
	}
	if err := db.Delete(&models.Player{}, "room_id = ?", id).Error; err != nil {
		return translate("delete room players", err)
	}
	res := db.Delete(&models.Room{}, "id = ?", id)
	if res.Error != nil {
		return translate("delete room", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete room", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *roomRepo) Lock(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, translate("lock room", err)
	}
	return &room, nil
}

func (r *roomRepo) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at asc")
		}).
		Preload("Scores", func(db *gorm.DB) *gorm.DB {
			return db.Order("round_number asc, created_at asc")
		}).
		Preload("Scores.Player")
}
