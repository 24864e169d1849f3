package repositories

import (
	"context"

	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository interface {
	Create(ctx context.Context, score *models.Score) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Score, error)
	// List returns scores ordered by round then creation; a nil roomID lists every room.
	List(ctx context.Context, roomID *uuid.UUID) ([]models.Score, error)
	Update(ctx context.Context, score *models.Score) error
	Delete(ctx context.Context, id uuid.UUID) (*models.Score, error)
	DistinctRoundCount(ctx context.Context, roomID uuid.UUID) (int, error)
	// CountCategorized counts the room's scores that carry a category.
	CountCategorized(ctx context.Context, roomID uuid.UUID) (int, error)
	// PlayerTotals sums score_value per player name over every score of the
	// room, inactive players included. Same-name players share one total.
	PlayerTotals(ctx context.Context, roomID uuid.UUID) (map[string]int, error)
}

type scoreRepo struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

func (r *scoreRepo) Create(ctx context.Context, score *models.Score) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(score).Error
	return translate("create score", err)
}

func (r *scoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Score, error) {
	var score models.Score
	if err := r.db.WithContext(ctx).Preload("Player").First(&score, "id = ?", id).Error; err != nil {
		return nil, translate("find score", err)
	}
	return &score, nil
}

func (r *scoreRepo) List(ctx context.Context, roomID *uuid.UUID) ([]models.Score, error) {
	var scores []models.Score
	q := r.db.WithContext(ctx).Preload("Player").Order("round_number asc, created_at asc")
	if roomID != nil {
		q = q.Where("room_id = ?", *roomID)
	}
	if err := q.Find(&scores).Error; err != nil {
		return nil, translate("list scores", err)
	}
	return scores, nil
}

// Update writes only the mutable columns; the identifying tuple never changes.
func (r *scoreRepo) Update(ctx context.Context, score *models.Score) error {
	res := r.db.WithContext(ctx).Model(score).
		Select("score_value", "notes").
		Updates(score)
	if res.Error != nil {
		return translate("update score", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("update score", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete returns the removed score so callers know which room it belonged to.
func (r *scoreRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Score, error) {
	var score models.Score
	db := r.db.WithContext(ctx)
	if err := db.First(&score, "id = ?", id).Error; err != nil {
		return nil, translate("find score", err)
	}
	if err := db.Delete(&models.Score{}, "id = ?", id).Error; err != nil {
		return nil, translate("delete score", err)
	}
	return &score, nil
}

func (r *scoreRepo) DistinctRoundCount(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Score{}).
		Where("room_id = ?", roomID).
		Distinct("round_number").
		Count(&count).Error
	if err != nil {
		return 0, translate("count rounds", err)
	}
	return int(count), nil
}

func (r *scoreRepo) CountCategorized(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Score{}).
		Where("room_id = ? AND category <> ?", roomID, models.CategoryNone).
		Count(&count).Error
	if err != nil {
		return 0, translate("count categorized scores", err)
	}
	return int(count), nil
}

func (r *scoreRepo) PlayerTotals(ctx context.Context, roomID uuid.UUID) (map[string]int, error) {
	var rows []struct {
		Name  string
		Total int
	}
	err := r.db.WithContext(ctx).Model(&models.Score{}).
		Select("players.name AS name, SUM(scores.score_value) AS total").
		Joins("JOIN players ON players.id = scores.player_id").
		Where("scores.room_id = ?", roomID).
		Group("players.name").
		Scan(&rows).Error
	if err != nil {
		return nil, translate("sum player totals", err)
	}
	totals := make(map[string]int, len(rows))
	for _, row := range rows {
		totals[row.Name] = row.Total
	}
	return totals, nil
}
