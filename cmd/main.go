package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/c0sm0thecoder/scorecard-api/config"
	"github.com/c0sm0thecoder/scorecard-api/internal/cache"
	"github.com/c0sm0thecoder/scorecard-api/internal/controllers"
	"github.com/c0sm0thecoder/scorecard-api/internal/logger"
	"github.com/c0sm0thecoder/scorecard-api/internal/repositories"
	"github.com/c0sm0thecoder/scorecard-api/internal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logCloser, err := logger.Setup(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the store
	db := initDB(cfg)
	store := repositories.NewStore(db)
	summaries := initSummaryCache(ctx, cfg)

	// Initialize services
	roomService := services.NewRoomService(store, services.NewCodeAllocator(services.NanoidCodeGenerator), summaries)
	playerService := services.NewPlayerService(store, summaries)
	scoreService := services.NewScoreService(store, summaries)

	// Create router
	router := controllers.NewV1Router(controllers.RouterConfig{
		RoomService:    roomService,
		PlayerService:  playerService,
		ScoreService:   scoreService,
		Health:         store,
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		log.Fatalf("Failed to create listener: %v", err)
	}
	server := &http.Server{Handler: router}

	go func() {
		log.Printf("Server listening on %s", listener.Addr())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func initDB(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), repositories.GormConfig())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database handle:", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := repositories.Migrate(db); err != nil {
		log.Fatal(err)
	}

	return db
}

// initSummaryCache falls back to no caching when REDIS_URL is unset.
func initSummaryCache(ctx context.Context, cfg config.Config) cache.SummaryCache {
	if cfg.RedisUrl == "" {
		log.Printf("REDIS_URL not set, room summaries are not cached")
		return cache.NewNopSummaryCache()
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisUrl)
	if err != nil {
		log.Fatal(err)
	}
	return cache.NewRedisSummaryCache(client, cfg.SummaryCacheTTL)
}
