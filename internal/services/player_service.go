package services

import (
	"context"
	"errors"

	"github.com/c0sm0thecoder/scorecard-api/internal/cache"
	"github.com/c0sm0thecoder/scorecard-api/internal/dto"
	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/c0sm0thecoder/scorecard-api/internal/repositories"
	"github.com/google/uuid"
)

const (
	msgPlayerNotFound  = "Player not found"
	msgDuplicatePlayer = "an active player with this name already exists in the room"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, req dto.CreatePlayerRequest) (*models.Player, error)
	// ListPlayers filters by room when roomID is non-nil.
	ListPlayers(ctx context.Context, roomID *uuid.UUID, activeOnly bool) ([]models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, req dto.UpdatePlayerRequest, partial bool) (*models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}

type playerService struct {
	store     repositories.Store
	summaries cache.SummaryCache
}

func NewPlayerService(store repositories.Store, summaries cache.SummaryCache) PlayerService {
	return &playerService{store: store, summaries: summaries}
}

func (s *playerService) CreatePlayer(ctx context.Context, req dto.CreatePlayerRequest) (*models.Player, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	player := &models.Player{
		Name:     req.Name,
		RoomID:   *req.Room,
		IsActive: true,
	}
	if req.IsActive != nil {
		player.IsActive = *req.IsActive
	}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Rooms().FindByID(ctx, player.RoomID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return invalid("room %s does not exist", player.RoomID)
			}
			return err
		}
		return tx.Players().Create(ctx, player)
	})
	if err != nil {
		return nil, classify(err, msgPlayerNotFound, msgDuplicatePlayer)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, roomID *uuid.UUID, activeOnly bool) ([]models.Player, error) {
	return s.store.Players().List(ctx, roomID, activeOnly)
}

func (s *playerService) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player, err := s.store.Players().FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, msgPlayerNotFound, "")
	}
	return player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id uuid.UUID, req dto.UpdatePlayerRequest, partial bool) (*models.Player, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !partial && req.Name == nil {
		return nil, invalid("name is required")
	}
	var player *models.Player
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		player, err = tx.Players().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			player.Name = *req.Name
		}
		if req.IsActive != nil {
			player.IsActive = *req.IsActive
		}
		return tx.Players().Update(ctx, player)
	})
	if err != nil {
		return nil, classify(err, msgPlayerNotFound, msgDuplicatePlayer)
	}
	// Totals are keyed by player name.
	dropSummary(ctx, s.summaries, player.RoomID)
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	var roomID uuid.UUID
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		player, err := tx.Players().FindByID(ctx, id)
		if err != nil {
			return err
		}
		roomID = player.RoomID
		return tx.Players().Delete(ctx, id)
	})
	if err != nil {
		return classify(err, msgPlayerNotFound, "")
	}
	dropSummary(ctx, s.summaries, roomID)
	return nil
}
