package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store groups the repositories over one gorm handle. The repositories of
// the Store passed to a Transaction callback all share that transaction.
type Store interface {
	Rooms() RoomRepository
	Players() PlayerRepository
	Scores() ScoreRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db      *gorm.DB
	rooms   RoomRepository
	players PlayerRepository
	scores  ScoreRepository
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:      db,
		rooms:   NewRoomRepository(db),
		players: NewPlayerRepository(db),
		scores:  NewScoreRepository(db),
	}
}

func (s *gormStore) Rooms() RoomRepository     { return s.rooms }
func (s *gormStore) Players() PlayerRepository { return s.players }
func (s *gormStore) Scores() ScoreRepository   { return s.scores }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates the tables, indexes and foreign keys.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Room{}, &models.Player{}, &models.Score{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// GormConfig is the gorm setup shared by every dialector: driver errors are
// translated so that unique violations surface as gorm.ErrDuplicatedKey,
// and timestamps are taken in UTC.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: newQueryLogger(log.Default()),
	}
}

func newQueryLogger(w logger.Writer) logger.Interface {
	return conflictQuietLogger{logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})}
}

// conflictQuietLogger drops the error line for unique violations. They are
// answered with 409 and the failed statement would log the submitted values.
// Slow statements are still reported.
type conflictQuietLogger struct {
	logger.Interface
}

func (l conflictQuietLogger) LogMode(level logger.LogLevel) logger.Interface {
	return conflictQuietLogger{l.Interface.LogMode(level)}
}

func (l conflictQuietLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = nil
	}
	l.Interface.Trace(ctx, begin, fc, err)
}
