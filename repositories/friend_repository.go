// File: /repositories/friend_repository.go
package repositories

import (
	"gorm.io/gorm"

	"chatmini-api/models"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// FindByPair looks up the single relationship row for a canonically ordered
// pair, regardless of status.
func (r *FriendRepository) FindByPair(user1ID, user2ID uint) (*models.UserFriend, error) {
	var friend models.UserFriend
	err := r.db.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).First(&friend).Error
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

func (r *FriendRepository) FindByID(friendID uint) (*models.UserFriend, error) {
	var friend models.UserFriend
	if err := r.db.First(&friend, friendID).Error; err != nil {
		return nil, err
	}
	return &friend, nil
}

func (r *FriendRepository) Create(friend *models.UserFriend) error {
	return r.db.Create(friend).Error
}

func (r *FriendRepository) Save(friend *models.UserFriend) error {
	return r.db.Save(friend).Error
}

func (r *FriendRepository) Delete(friendID uint) error {
	return r.db.Delete(&models.UserFriend{}, friendID).Error
}

// FindAcceptedByUser returns ACCEPTED rows where the user sits on either
// side of the pair.
func (r *FriendRepository) FindAcceptedByUser(userID uint) ([]models.UserFriend, error) {
	var friends []models.UserFriend
	err := r.db.Where("(user1_id = ? OR user2_id = ?) AND status = ?",
		userID, userID, models.FriendStatusAccepted).Find(&friends).Error
	return friends, err
}

// FindPendingForUser returns PENDING rows where the user is the user2 side.
// Requests from users with a larger id are invisible here, matching the
// upstream query shape.
func (r *FriendRepository) FindPendingForUser(userID uint) ([]models.UserFriend, error) {
	var friends []models.UserFriend
	err := r.db.Where("user2_id = ? AND status = ?", userID, models.FriendStatusPending).
		Order("created_at DESC").Find(&friends).Error
	return friends, err
}
