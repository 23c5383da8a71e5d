// File: /services/service_test.go
package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chatmini-api/models"
	"chatmini-api/repositories"
)

// newTestDB opens a per-test in-memory database. The DSN is keyed by the
// test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
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
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, nickname string) *models.UserProfile {
	t.Helper()

	profile := &models.UserProfile{UserNickname: nickname}
	if err := repositories.NewUserRepository(db).CreateProfile(profile); err != nil {
		t.Fatalf("create test user %q: %v", nickname, err)
	}
	return profile
}
