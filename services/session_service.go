// File: /services/session_service.go
package services

import (
	"time"

	"github.com/google/uuid"

	"chatmini-api/models"
	"chatmini-api/repositories"
)

// SessionService owns the server-side session store: opaque tokens mapped
// to user records, with expiry. Handlers never see the mapping directly;
// middleware resolves the token before handler invocation.
type SessionService struct {
	sessionRepo    *repositories.SessionRepository
	userRepo       *repositories.UserRepository
	timeoutMinutes int
}

func NewSessionService(sessionRepo *repositories.SessionRepository, userRepo *repositories.UserRepository, timeoutMinutes int) *SessionService {
	return &SessionService{
		sessionRepo:    sessionRepo,
		userRepo:       userRepo,
		timeoutMinutes: timeoutMinutes,
	}
}

func (s *SessionService) TimeoutMinutes() int { return s.timeoutMinutes }

// Create issues a fresh opaque token for the user.
func (s *SessionService) Create(userID uint) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.timeoutMinutes) * time.Minute),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve maps a token to its user profile. Expired or unknown tokens
// resolve to nothing.
func (s *SessionService) Resolve(token string) (*models.UserProfile, error) {
	session, err := s.sessionRepo.FindValidByToken(token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindProfileByID(session.UserID)
}

// Destroy invalidates one session. Unknown tokens are a no-op.
func (s *SessionService) Destroy(token string) error {
	return s.sessionRepo.DeleteByToken(token)
}

// DestroyForUser invalidates every session of a user, e.g. on account delete.
func (s *SessionService) DestroyForUser(userID uint) error {
	return s.sessionRepo.DeleteByUserID(userID)
}
