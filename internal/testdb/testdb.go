// Package testdb opens throwaway in-memory SQLite databases with the
// production schema for tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/c0sm0thecoder/scorecard-api/internal/repositories"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Open returns a migrated database private to t. It is closed on cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", name)

	db, err := gorm.Open(sqlite.Open(dsn), repositories.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the shared in-memory database alive and
	// serialises transactions the way a row lock would.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := repositories.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// OpenStore is Open wrapped in a repositories.Store.
func OpenStore(t testing.TB) repositories.Store {
	t.Helper()
	return repositories.NewStore(Open(t))
}
