// File: /services/user_service.go
package services

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"chatmini-api/apperrors"
	"chatmini-api/models"
	"chatmini-api/repositories"
	"chatmini-api/utils"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateProfile creates a bare profile without credentials.
func (s *UserService) CreateProfile(nickname string, profileImgURL *string) (*models.UserProfile, error) {
	if !utils.IsValidNickname(nickname) {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "invalid nickname")
	}
	taken, err := s.userRepo.NicknameExists(nickname)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateNickname
	}
	profile := &models.UserProfile{UserNickname: nickname, ProfileImgURL: profileImgURL}
	if err := s.userRepo.CreateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) FindByID(userID uint) (*models.UserProfile, error) {
	profile, err := s.userRepo.FindProfileByID(userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(userID uint, nickname string, profileImgURL *string) (*models.UserProfile, error) {
	profile, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}
	profile.UserNickname = nickname
	profile.ProfileImgURL = profileImgURL
	if err := s.userRepo.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes the profile row. Dependent rows are left to database
// constraints, matching the upstream behavior.
func (s *UserService) Delete(userID uint) error {
	return s.userRepo.DeleteProfile(userID)
}

// SignUp creates the profile and its credential atomically.
func (s *UserService) SignUp(loginID, password, nickname string) (*models.UserProfile, error) {
	if !utils.IsValidLoginID(loginID) {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "invalid login id")
	}
	if !utils.IsValidPassword(password) {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "invalid password")
	}
	if !utils.IsValidNickname(nickname) {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "invalid nickname")
	}
	exists, err := s.userRepo.LoginIDExists(loginID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateLoginID
	}
	taken, err := s.userRepo.NicknameExists(nickname)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateNickname
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var profile *models.UserProfile
	err = s.userRepo.Transaction(func(txRepo *repositories.UserRepository) error {
		profile = &models.UserProfile{UserNickname: nickname}
		if err := txRepo.CreateProfile(profile); err != nil {
			return err
		}
		credential := &models.UserCredential{
			LoginID:  loginID,
			Password: string(hash),
			UserID:   profile.UserID,
		}
		return txRepo.CreateCredential(credential)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", profile.UserID).Str("nickname", nickname).Msg("user signed up")
	return profile, nil
}

// Login verifies the credential pair. Unknown login ids and wrong passwords
// return the same error so callers cannot tell the two apart.
func (s *UserService) Login(loginID, password string) (*models.UserProfile, error) {
	credential, err := s.userRepo.FindCredentialByLoginID(loginID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.ErrLoginInputInvalid
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(credential.Password), []byte(password)) != nil {
		return nil, apperrors.ErrLoginInputInvalid
	}
	return s.userRepo.FindProfileByID(credential.UserID)
}

// UpdateNickname rejects both a nickname identical to the current one and
// one already held by another user.
func (s *UserService) UpdateNickname(userID uint, newNickname string) (*models.UserProfile, error) {
	if !utils.IsValidNickname(newNickname) {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "invalid nickname")
	}
	profile, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if profile.UserNickname == newNickname {
		return nil, apperrors.ErrNicknameSameAsCurrent
	}
	taken, err := s.userRepo.NicknameExists(newNickname)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateNickname
	}
	profile.UserNickname = newNickname
	if err := s.userRepo.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
