package repositories

import (
	"context"

	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	// FindActiveByName matches the name exactly (case-sensitive).
	FindActiveByName(ctx context.Context, roomID uuid.UUID, name string) (*models.Player, error)
	// List returns players ordered by join time; a nil roomID lists every room.
	List(ctx context.Context, roomID *uuid.UUID, activeOnly bool) ([]models.Player, error)
	CountActive(ctx context.Context, roomID uuid.UUID) (int, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type playerRepo struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepo{db: db}
}

func (r *playerRepo) Create(ctx context.Context, player *models.Player) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(player).Error
	return translate("create player", err)
}

func (r *playerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var player models.Player
	if err := r.db.WithContext(ctx).First(&player, "id = ?", id).Error; err != nil {
		return nil, translate("find player", err)
	}
	return &player, nil
}

func (r *playerRepo) FindActiveByName(ctx context.Context, roomID uuid.UUID, name string) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND name = ? AND is_active = ?", roomID, name, true).
		Order("joined_at asc").
		First(&player).Error
	if err != nil {
		return nil, translate("find player by name", err)
	}
	return &player, nil
}

func (r *playerRepo) List(ctx context.Context, roomID *uuid.UUID, activeOnly bool) ([]models.Player, error) {
	var players []models.Player
	q := r.db.WithContext(ctx).Order("joined_at asc")
	if roomID != nil {
		q = q.Where("room_id = ?", *roomID)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&players).Error; err != nil {
		return nil, translate("list players", err)
	}
	return players, nil
}

func (r *playerRepo) CountActive(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Player{}).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Count(&count).Error
	if err != nil {
		return 0, translate("count players", err)
	}
	return int(count), nil
}

func (r *playerRepo) Update(ctx context.Context, player *models.Player) error {
	res := r.db.WithContext(ctx).Model(player).
		Select("name", "is_active").
		Updates(player)
	if res.Error != nil {
		return translate("update player", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("update player", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *playerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Delete(&models.Score{}, "player_id = ?", id).Error; err != nil {
		return translate("delete player scores", err)
	}
	res := db.Delete(&models.Player{}, "id = ?", id)
	if res.Error != nil {
		return translate("delete player", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete player", gorm.ErrRecordNotFound)
	}
	return nil
}
