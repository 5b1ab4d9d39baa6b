// Package dbtest opens a migrated in-memory store for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"bookrental/util/database"
)

// New returns a fresh sqlite-backed gorm handle with foreign keys enforced.
// The pool is pinned to one connection: an in-memory database lives and dies
// with its connection.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	g, err := database.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := g.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(g); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return g
}
