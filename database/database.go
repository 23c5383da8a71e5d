// File: /database/database.go
package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chatmini-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.UserProfile{},
		&models.UserCredential{},
		&models.Session{},
		&models.UserFriend{},
		&models.ChatRoom{},
		&models.RoomParticipant{},
		&models.ChatMessage{},
		&models.Board{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// One relationship row per unordered user pair.
	if err := db.Exec("ALTER TABLE user_friend ADD CONSTRAINT uk_user_friend_pair UNIQUE (user1_id, user2_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for user_friend: %v\n", err)
	}

	// Message history is always read per room in creation order.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_message_room_created ON chat_message(room_id, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for chat_message: %v\n", err)
	}

	// Active-participant lookups filter on quit_at IS NULL.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_participants_room_quit ON room_participants_history(room_id, quit_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for room_participants_history: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.UserProfile{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.UserProfile{
		{UserNickname: "user1"},
		{UserNickname: "user2"},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.UserNickname, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
