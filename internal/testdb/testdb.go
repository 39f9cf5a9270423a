package testdb

import (
	"testing"

	"cms-backend/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns an in-memory database migrated with the full model set.
// TranslateError keeps duplicate-key detection identical to the
// production postgres setup.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// Every pooled connection to :memory: is a separate database; keep a
	// single one so all queries see the migrated schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
