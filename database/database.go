package database

import (
	"fmt"
	"log"
	"os"

	"cms-backend/internal/domain/activity"
	"cms-backend/internal/domain/comments"
	"cms-backend/internal/domain/media"
	"cms-backend/internal/domain/newsletter"
	"cms-backend/internal/domain/pages"
	"cms-backend/internal/domain/posts"
	"cms-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Models lists every persisted type; shared with the test database so
// migrations stay in one place.
func Models() []interface{} {
	return []interface{}{
		&users.User{},
		&activity.UserActivity{},

		&pages.Page{},
		&pages.PageRevision{},

		&posts.Post{},
		&posts.Category{},
		&comments.Comment{},

		&media.MediaItem{},
		&newsletter.Subscriber{},
	}
}

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	// TranslateError lets handlers match gorm.ErrDuplicatedKey and answer
	// 409 instead of 500 when a unique index rejects a write (slug or
	// revision-version races).
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(Models()...); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}
