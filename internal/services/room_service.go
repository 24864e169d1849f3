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

const msgRoomNotFound = "Room not found"

type RoomService interface {
	CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	// GetRoomByCode only sees active rooms.
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req dto.UpdateRoomRequest, partial bool) (*models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	// JoinRoom finds the active player with this exact name or creates one.
	// created reports which of the two happened.
	JoinRoom(ctx context.Context, roomID uuid.UUID, req dto.JoinRoomRequest) (player *models.Player, created bool, err error)
}

type roomService struct {
	store     repositories.Store
	codes     *CodeAllocator
	summaries cache.SummaryCache
}

func NewRoomService(store repositories.Store, codes *CodeAllocator, summaries cache.SummaryCache) RoomService {
	return &roomService{
		store:     store,
		codes:     codes,
		summaries: summaries,
	}
}

func (s *roomService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	for {
		var room *models.Room
		err := s.store.Transaction(ctx, func(tx repositories.Store) error {
			code, err := s.codes.Allocate(ctx, tx.Rooms())
			if err != nil {
				return err
			}
			room = &models.Room{
				Name:     req.Name,
				GameType: req.GameType,
				RoomCode: code,
				IsActive: true,
			}
			return tx.Rooms().Create(ctx, room)
		})
		if errors.Is(err, repositories.ErrConflict) && ctx.Err() == nil {
			// Another request committed the same code after our check.
			log.Printf("room code %s lost to a concurrent create, retrying", room.RoomCode)
			continue
		}
		if err != nil {
			return nil, err
		}
		return room, nil
	}
}

func (s *roomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.store.Rooms().List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if err := s.fillPlayerCount(ctx, &rooms[i]); err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

func (s *roomService) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := s.store.Rooms().FindDetailed(ctx, id)
	if err != nil {
		return nil, classify(err, msgRoomNotFound, "")
	}
	if err := s.fillPlayerCount(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *roomService) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	if code == "" {
		return nil, invalid("Room code is required")
	}
	room, err := s.store.Rooms().FindByCode(ctx, code, true)
	if err != nil {
		return nil, classify(err, msgRoomNotFound, "")
	}
	if err := s.fillPlayerCount(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id uuid.UUID, req dto.UpdateRoomRequest, partial bool) (*models.Room, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !partial {
		if req.Name == nil {
			return nil, invalid("name is required")
		}
		if req.GameType == nil {
			return nil, invalid("game_type is required")
		}
	}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		room, err := tx.Rooms().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			room.Name = *req.Name
		}
		if req.GameType != nil && *req.GameType != room.GameType {
			if room.GameType == models.GameYahtzee {
				tagged, err := tx.Scores().CountCategorized(ctx, room.ID)
				if err != nil {
					return err
				}
				if tagged > 0 {
					return invalid("game_type cannot change while the room has scores with a category")
				}
			}
			room.GameType = *req.GameType
		}
		if req.IsActive != nil {
			room.IsActive = *req.IsActive
		}
		return tx.Rooms().Update(ctx, room)
	})
	if err != nil {
		return nil, classify(err, msgRoomNotFound, "")
	}
	dropSummary(ctx, s.summaries, id)
	return s.GetRoom(ctx, id)
}

func (s *roomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		return tx.Rooms().Delete(ctx, id)
	})
	if err != nil {
		return classify(err, msgRoomNotFound, "")
	}
	dropSummary(ctx, s.summaries, id)
	return nil
}

func (s *roomService) JoinRoom(ctx context.Context, roomID uuid.UUID, req dto.JoinRoomRequest) (*models.Player, bool, error) {
	if req.Name == "" {
		return nil, false, invalid("Player name is required")
	}
	if err := validateRequest(req); err != nil {
		return nil, false, err
	}

	var player *models.Player
	created := false
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		// Serialises joins on the same room where row locks are supported.
		if _, err := tx.Rooms().Lock(ctx, roomID); err != nil {
			return err
		}
		existing, err := tx.Players().FindActiveByName(ctx, roomID, req.Name)
		if err == nil {
			player = existing
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		player = &models.Player{
			Name:     req.Name,
			RoomID:   roomID,
			IsActive: true,
		}
		if err := tx.Players().Create(ctx, player); err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, repositories.ErrConflict) {
		// A concurrent join inserted the same active name first.
		existing, ferr := s.store.Players().FindActiveByName(ctx, roomID, req.Name)
		if ferr != nil {
			return nil, false, classify(ferr, msgRoomNotFound, "")
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, classify(err, msgRoomNotFound, "")
	}
	return player, created, nil
}

func (s *roomService) fillPlayerCount(ctx context.Context, room *models.Room) error {
	count, err := s.store.Players().CountActive(ctx, room.ID)
	if err != nil {
		return err
	}
	room.PlayerCount = count
	return nil
}
