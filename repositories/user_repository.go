// File: /repositories/user_repository.go
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"chatmini-api/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateProfile(profile *models.UserProfile) error {
	return r.db.Create(profile).Error
}

func (r *UserRepository) FindProfileByID(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.First(&profile, userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) FindProfileByNickname(nickname string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("user_nickname = ?", nickname).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) NicknameExists(nickname string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserProfile{}).Where("user_nickname = ?", nickname).Count(&count).Error
	return count > 0, err
}

// SearchByNickname returns profiles whose nickname contains the given
// substring, excluding the searching user.
func (r *UserRepository) SearchByNickname(nickname string, excludeUserID uint) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := r.db.Where("user_nickname LIKE ? AND user_id != ?", "%"+nickname+"%", excludeUserID).
		Find(&profiles).Error
	return profiles, err
}

func (r *UserRepository) SaveProfile(profile *models.UserProfile) error {
	return r.db.Save(profile).Error
}

func (r *UserRepository) DeleteProfile(userID uint) error {
	return r.db.Delete(&models.UserProfile{}, userID).Error
}

func (r *UserRepository) CreateCredential(credential *models.UserCredential) error {
	return r.db.Create(credential).Error
}

func (r *UserRepository) FindCredentialByLoginID(loginID string) (*models.UserCredential, error) {
	var credential models.UserCredential
	if err := r.db.Where("login_id = ?", loginID).First(&credential).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *UserRepository) LoginIDExists(loginID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserCredential{}).Where("login_id = ?", loginID).Count(&count).Error
	return count > 0, err
}

// Transaction runs fn inside a database transaction using a repository
// bound to the transactional handle.
func (r *UserRepository) Transaction(fn func(txRepo *UserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepository(tx))
	})
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
