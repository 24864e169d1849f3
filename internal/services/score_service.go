package services

import (
	"context"
	"errors"
	"log"

	"github.com/c0sm0thecoder/scorecard-api/internal/cache"
	"github.com/c0sm0thecoder/scorecard-api/internal/dto"
	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/c0sm0thecoder/scorecard-api/internal/repositories"
	"github.com/google/uuid"
)

const (
	msgScoreNotFound  = "Score not found"
	msgDuplicateScore = "a score for this player, room, round and category already exists"
)

type ScoreService interface {
	RecordScore(ctx context.Context, req dto.CreateScoreRequest) (*models.Score, error)
	// ListScores filters by room when roomID is non-nil.
	ListScores(ctx context.Context, roomID *uuid.UUID) ([]models.Score, error)
	GetScore(ctx context.Context, id uuid.UUID) (*models.Score, error)
	// UpdateScore changes score_value and notes only.
	UpdateScore(ctx context.Context, id uuid.UUID, req dto.UpdateScoreRequest, partial bool) (*models.Score, error)
	DeleteScore(ctx context.Context, id uuid.UUID) error
	RoomSummary(ctx context.Context, roomID uuid.UUID) (*models.RoomSummary, error)
}

type scoreService struct {
	store     repositories.Store
	summaries cache.SummaryCache
}

func NewScoreService(store repositories.Store, summaries cache.SummaryCache) ScoreService {
	return &scoreService{store: store, summaries: summaries}
}

func (s *scoreService) RecordScore(ctx context.Context, req dto.CreateScoreRequest) (*models.Score, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	score := &models.Score{
		PlayerID:    *req.Player,
		RoomID:      *req.Room,
		RoundNumber: 1,
		ScoreValue:  *req.ScoreValue,
		Notes:       req.Notes,
	}
	if req.RoundNumber != nil {
		score.RoundNumber = *req.RoundNumber
	}
	if req.Category != nil {
		score.Category = *req.Category
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		player, err := tx.Players().FindByID(ctx, score.PlayerID)
		if errors.Is(err, repositories.ErrNotFound) {
			return invalid("player %s does not exist", score.PlayerID)
		}
		if err != nil {
			return err
		}
		room, err := tx.Rooms().FindByID(ctx, score.RoomID)
		if errors.Is(err, repositories.ErrNotFound) {
			return invalid("room %s does not exist", score.RoomID)
		}
		if err != nil {
			return err
		}
		if player.RoomID != room.ID {
			return invalid("player does not belong to this room")
		}
		if score.Category != models.CategoryNone && room.GameType != models.GameYahtzee {
			return invalid("category is only allowed in yahtzee rooms")
		}
		if err := tx.Scores().Create(ctx, score); err != nil {
			return err
		}
		score.Player = player
		return nil
	})
	if err != nil {
		return nil, classify(err, msgScoreNotFound, msgDuplicateScore)
	}
	dropSummary(ctx, s.summaries, score.RoomID)
	return score, nil
}

func (s *scoreService) ListScores(ctx context.Context, roomID *uuid.UUID) ([]models.Score, error) {
	return s.store.Scores().List(ctx, roomID)
}

func (s *scoreService) GetScore(ctx context.Context, id uuid.UUID) (*models.Score, error) {
	score, err := s.store.Scores().FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, msgScoreNotFound, "")
	}
	return score, nil
}

func (s *scoreService) UpdateScore(ctx context.Context, id uuid.UUID, req dto.UpdateScoreRequest, partial bool) (*models.Score, error) {
	if !partial && req.ScoreValue == nil {
		return nil, invalid("score_value is required")
	}
	var score *models.Score
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		score, err = tx.Scores().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.ScoreValue != nil {
			score.ScoreValue = *req.ScoreValue
		}
		if req.Notes != nil {
			score.Notes = *req.Notes
		}
		return tx.Scores().Update(ctx, score)
	})
	if err != nil {
		return nil, classify(err, msgScoreNotFound, msgDuplicateScore)
	}
	dropSummary(ctx, s.summaries, score.RoomID)
	return score, nil
}

func (s *scoreService) DeleteScore(ctx context.Context, id uuid.UUID) error {
	var deleted *models.Score
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		deleted, err = tx.Scores().Delete(ctx, id)
		return err
	})
	if err != nil {
		return classify(err, msgScoreNotFound, "")
	}
	dropSummary(ctx, s.summaries, deleted.RoomID)
	return nil
}

// RoomSummary totals every score of the room by player name, inactive
// players included, and counts the distinct rounds.
func (s *scoreService) RoomSummary(ctx context.Context, roomID uuid.UUID) (*models.RoomSummary, error) {
	room, err := s.store.Rooms().FindByID(ctx, roomID)
	if err != nil {
		return nil, classify(err, msgRoomNotFound, "")
	}

	// The generation is read before the totals so that a write landing
	// in between leaves the entry stored below unreachable.
	cached, gen, err := s.summaries.Get(ctx, roomID)
	cacheable := err == nil
	if err != nil {
		log.Printf("summary cache: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	summary := &models.RoomSummary{
		RoomName: room.Name,
		GameType: room.GameType,
	}
	if summary.PlayerTotals, err = s.store.Scores().PlayerTotals(ctx, roomID); err != nil {
		return nil, err
	}
	if summary.TotalRounds, err = s.store.Scores().DistinctRoundCount(ctx, roomID); err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.summaries.Set(ctx, roomID, gen, summary); err != nil {
			log.Printf("summary cache: %v", err)
		}
	}
	return summary, nil
}

// dropSummary invalidates the cached summary of a room after a write. A cache
// failure is logged and never fails the write.
func dropSummary(ctx context.Context, summaries cache.SummaryCache, roomID uuid.UUID) {
	if err := summaries.Invalidate(ctx, roomID); err != nil {
		log.Printf("summary cache: %v", err)
	}
}
